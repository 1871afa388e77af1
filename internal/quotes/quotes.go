// Package quotes holds the motivational advice shown next to the journal.
package quotes

import (
	"math/rand/v2"

	"planner/internal/core"
)

type Quote struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var all = []Quote{
	{"Persistence is key", "Every day is a new chance to start over and do better. Don't punish yourself for slips, learn from them."},
	{"Listen to your body", "Understand its signals, rest when you need to and feed it the best you can."},
	{"Your mind is your ally", "Visualization and meditation are not only for calm. Use those minutes to focus your energy on the future you are building."},
	{"Small wins", "Celebrate every step, however small. Each page read, each minute of training, each extra hour brings you closer."},
	{"Focus on the process", "Enjoy the path of growth. Discipline and consistency are the real teachers."},
	{"Be kind to yourself", "Talk to yourself the way you would talk to a good friend. Self-compassion is a pillar of mental wellbeing."},
	{"Define your why", "When motivation fades, remember the deeper reason behind your goals and reconnect with it."},
	{"Progress is personal", "Don't compare yourself with anyone else. Your path is yours and so are your victories."},
	{"Breathe and reconnect", "If you feel overwhelmed, take a moment to breathe deeply. One minute with yourself can reset your day."},
	{"Learning never ends", "Every challenge is a chance to learn something new about yourself and how to get past obstacles."},
}

// All returns a copy of every quote.
func All() []Quote {
	return append([]Quote(nil), all...)
}

// Random picks a quote uniformly using r, or the global source when r is nil.
func Random(r *rand.Rand) Quote {
	if r == nil {
		return all[rand.IntN(len(all))]
	}
	return all[r.IntN(len(all))]
}

// ForDate picks the same quote for the whole day, cycling through the list
// one day at a time.
func ForDate(d core.Date) Quote {
	days := d.Unix() / 86400
	i := int(days % int64(len(all)))
	if i < 0 {
		i += len(all)
	}
	return all[i]
}
