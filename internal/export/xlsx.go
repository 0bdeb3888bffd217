// Package export produces spreadsheet downloads for the admin back office.
package export

import (
	"fmt"
	"io"

	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const clientsSheet = "Contactos"

var clientHeaders = []string{"ID", "Nombre", "Email", "Teléfono", "Empresa", "Mensaje", "Origen", "Estado", "Fecha"}

// WriteClientsXLSX writes the client inquiry list as an XLSX workbook.
func WriteClientsXLSX(w io.Writer, clients []model.Client) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(clientsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range clientHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(clientsSheet, cell, header); err != nil {
			return err
		}
	}

	for row, client := range clients {
		values := []interface{}{
			client.ID,
			client.Name,
			client.Email,
			client.Phone,
			client.Company,
			client.Message,
			client.Source,
			string(client.Status),
			client.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(clientsSheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
