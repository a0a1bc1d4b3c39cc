package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "dental-staff-backend/models/db"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.JobApplication) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Professional", "Job", "Job type", "Status", "Proposed rate", "Accepted rate", "Applied at", "Availability"}

func (i impl) ExportApplicationList(list []dbmodels.JobApplication) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		row, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data table")
		}
	}
	f.SetSheetName(sheet, "Applications")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.JobApplication, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Professional"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ProfessionalUserSub); err != nil {
			return row, err
		}

		// "Job"
		col++
		if item.Job != nil {
			if err := writeColumn(f, sheet, col, row, item.Job.Title); err != nil {
				return row, err
			}
		}

		// "Job type"
		col++
		if item.Job != nil {
			if err := writeColumn(f, sheet, col, row, item.Job.JobType.ToHuman()); err != nil {
				return row, err
			}
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Proposed rate"
		col++
		if item.ProposedRate != nil {
			if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", *item.ProposedRate)); err != nil {
				return row, err
			}
		}

		// "Accepted rate"
		col++
		if item.AcceptedHourlyRate != nil {
			if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f", *item.AcceptedHourlyRate)); err != nil {
				return row, err
			}
		}

		// "Applied at"
		col++
		if !item.AppliedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.AppliedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Availability"
		col++
		if err := writeColumn(f, sheet, col, row, item.Availability); err != nil {
			return row, err
		}
	}
	return row, nil
}
