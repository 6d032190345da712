package performance

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/pmsuite/perfmetrics/internal/utils"
	log "github.com/sirupsen/logrus"
)

type SCurveRenderer interface {
	RenderSCurve(curve SCurve) (string, error)
}

type CsvSCurveRendererImpl struct{}

func NewCsvSCurveRenderer() *CsvSCurveRendererImpl {
	return &CsvSCurveRendererImpl{}
}

// RenderSCurve writes one "day,date,planned,actual" row per point with values at curve precision.
func (r *CsvSCurveRendererImpl) RenderSCurve(curve SCurve) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.Write([]string{"day", "date", "planned", "actual"}); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	for _, p := range curve.Points {
		row := []string{
			strconv.Itoa(p.Day),
			utils.FormatDate(p.Date),
			formatPercent(p.Planned),
			formatPercent(p.Actual),
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', CurvePrecision, 64)
}
