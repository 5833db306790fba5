package Controllers

import (
	"fmt"
	"log"
	"time"

	"ProSpine/Models"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

func ExportPatientReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	rows, totals, err := Models.PatientReport(Models.DB, filters, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}

	headers := map[string]string{
		"A1": "Patient",
		"B1": "Phone",
		"C1": "Doctor",
		"D1": "Treatment",
		"E1": "Sessions",
		"F1": "Total",
		"G1": "Paid",
		"H1": "Due",
		"I1": "Start Date",
		"J1": "Status",
	}
	file := excelize.NewFile()
	sheet := "Patients"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(rows); i++ {
		appendRowPatient(sheet, file, i, rows)
	}

	totalsRow := len(rows) + 3
	file.SetCellValue(sheet, fmt.Sprintf("A%v", totalsRow), "Totals")
	file.SetCellValue(sheet, fmt.Sprintf("F%v", totalsRow), totals.TotalAmount)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", totalsRow), totals.PaidAmount)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", totalsRow), totals.DueAmount)

	filename := "./PatientReport.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowPatient(sheet string, file *excelize.File, index int, rows []Models.PatientReportRow) *excelize.File {
	rowCount := index + 2
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), rows[index].PatientName)
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[index].PhoneNumber)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[index].AssignedDoctor)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), rows[index].TreatmentType)
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[index].SessionsPresent)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), rows[index].TotalAmount)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), rows[index].PaidAmount)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), rows[index].DueAmount)
	file.SetCellValue(sheet, fmt.Sprintf("I%v", rowCount), rows[index].StartDate)
	file.SetCellValue(sheet, fmt.Sprintf("J%v", rowCount), rows[index].Status)
	return file
}

func ExportTestReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	rows, totals, err := Models.TestReport(Models.DB, filters, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}

	headers := map[string]string{
		"A1": "UID",
		"B1": "Date",
		"C1": "Patient",
		"D1": "Tests",
		"E1": "Referred By",
		"F1": "Done By",
		"G1": "Total",
		"H1": "Advance",
		"I1": "Discount",
		"J1": "Due",
		"K1": "Payment",
	}
	file := excelize.NewFile()
	sheet := "Tests"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(rows); i++ {
		rowCount := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), rows[i].TestUID)
		file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[i].VisitDate)
		file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[i].PatientName)
		file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), rows[i].TestName)
		file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[i].ReferredBy)
		file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), rows[i].TestDoneBy)
		file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), rows[i].TotalAmount)
		file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), rows[i].AdvanceAmount)
		file.SetCellValue(sheet, fmt.Sprintf("I%v", rowCount), rows[i].Discount)
		file.SetCellValue(sheet, fmt.Sprintf("J%v", rowCount), rows[i].DueAmount)
		file.SetCellValue(sheet, fmt.Sprintf("K%v", rowCount), rows[i].PaymentStatus)
	}

	totalsRow := len(rows) + 3
	file.SetCellValue(sheet, fmt.Sprintf("A%v", totalsRow), "Totals")
	file.SetCellValue(sheet, fmt.Sprintf("G%v", totalsRow), totals.TotalAmount)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", totalsRow), totals.AdvanceAmount)
	file.SetCellValue(sheet, fmt.Sprintf("I%v", totalsRow), totals.Discount)
	file.SetCellValue(sheet, fmt.Sprintf("J%v", totalsRow), totals.DueAmount)

	filename := "./TestReport.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}
