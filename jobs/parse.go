package jobs

import (
	"github.com/subsets-io/mas-connector/archivist/models"
	"github.com/subsets-io/mas-connector/datagov"
	"github.com/subsets-io/mas-connector/utils"
)

// rateSchema describes how to read observations out of a dataset whose row
// layout is known. Datasets without a schema are stored raw-only.
type rateSchema struct {
	series    string // series name for the stored observations
	dateKey   string // row key holding the observation date
	valueKey  string // row key holding the observation value
	frequency string
}

var rateSchemas = map[string]rateSchema{
	"exchange_rates_usd_daily": {
		series:    "usd_sgd",
		dateKey:   "end_of_day",
		valueKey:  "exchange_rate",
		frequency: "daily",
	},
}

// parseRatePoints converts dataset rows into rate observations.
// Rows with missing or unparseable dates or values are skipped.
func parseRatePoints(name string, schema rateSchema, rows []datagov.Row) []*models.RatePoint {
	var points []*models.RatePoint

	for _, row := range rows {
		dateStr, ok := row[schema.dateKey].(string)
		if !ok {
			continue
		}

		date, err := utils.ParseDate(dateStr)
		if err != nil || date.IsZero() {
			continue
		}

		var value float64
		switch v := row[schema.valueKey].(type) {
		case string:
			parsed, ok := utils.ParseValue(v)
			if !ok {
				continue
			}
			value = parsed
		case float64:
			value = v
		default:
			continue
		}

		points = append(points, &models.RatePoint{
			Series:    schema.series,
			Date:      date,
			Value:     value,
			Frequency: schema.frequency,
			Source:    name,
		})
	}

	return points
}
