package tabular

import (
	"strings"

	"planner/internal/catalog"
)

// DateColumn is the header of the date column in every table.
const DateColumn = "date"

// legacyHeaders maps column titles found in older planner files to catalog
// keys.
var legacyHeaders = map[string]string{
	"fecha":                        DateColumn,
	"entrenamiento_hecho":          catalog.ExerciseDone,
	"entrenamiento_minutos":        catalog.ExerciseMinutes,
	"comida saludable":             catalog.HealthyMeal,
	"agua_litros":                  catalog.WaterLiters,
	"horas extra":                  catalog.OvertimeHours,
	"meditacion_minutos":           catalog.MeditationMinutes,
	"lectura_paginas":              catalog.ReadingPages,
	"otorrino (vos)":               catalog.ENTSelf,
	"otorrino (guille)":            catalog.ENTPartner,
	"dentista (vos)":               catalog.DentistSelf,
	"dentista (guille)":            catalog.DentistPartner,
	"neumonólogo (guille)":         catalog.PulmonologistPartner,
	"brackets (averiguar - ambos)": catalog.BracesBoth,
	"rinoseptoplastia (consulta)":  catalog.RhinoseptoplastyConsult,
	"app ingresos y salidas":       catalog.FinanceApp,
	"app progreso personal":        catalog.ProgressApp,
	"saldo_inicial":                catalog.StartingBalance,
}

// columnIndex maps canonical column names to their position in header.
// Unknown columns are ignored; the first occurrence of a name wins.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := canonical(h)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = i
	}
	return idx
}

func canonical(h string) string {
	h = strings.TrimSpace(h)
	lower := strings.ToLower(h)
	if key, ok := legacyHeaders[lower]; ok {
		return key
	}
	return lower
}

func cell(row []string, idx map[string]int, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
