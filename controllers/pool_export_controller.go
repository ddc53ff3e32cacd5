package controllers

import (
	"fmt"
	"strconv"

	"github.com/chevrutah247/crownheightsgroups-sub000/config"
	"github.com/chevrutah247/crownheightsgroups-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"
)

func centsToDollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// DownloadParticipantsExcel handles GET /admin/pool/export/excel: the
// paid participant roster for a pool week as a spreadsheet.
func DownloadParticipantsExcel(c *gin.Context) {
	utils.LogInfo("DownloadParticipantsExcel called")

	poolWeekID, _ := strconv.ParseUint(c.Query("pool_week_id"), 10, 32)
	pool, err := resolvePoolForAdmin(config.DB, uint(poolWeekID))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	entries, err := paidEntriesWithUsers(config.DB, pool.ID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogDebug("Exporting %d participants for pool week %d", len(entries), pool.ID)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Pool Participants")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet")
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("Crown Heights Groups - Weekly Pool Roster")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Week: " + pool.WeekStart.In(utils.PoolLocation()).Format("2006-01-02") +
		" to " + pool.WeekEnd.In(utils.PoolLocation()).Format("2006-01-02"))
	statusRow := sheet.AddRow()
	statusRow.AddCell().SetString("Status: " + pool.Status)
	sheet.AddRow() // spacing

	headers := []string{"Entry ID", "Name", "Email", "Phone", "Lottery", "Tickets", "Numbers", "Card Paid", "Credits Used"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	var totalCard, totalCredits int64
	for _, entry := range entries {
		row := sheet.AddRow()
		row.AddCell().SetString(fmt.Sprintf("%d", entry.ID))
		row.AddCell().SetString(entry.User.FullName())
		row.AddCell().SetString(entry.User.Email)
		row.AddCell().SetString(entry.User.Phone)
		row.AddCell().SetString(entry.LotteryType)
		row.AddCell().SetString(fmt.Sprintf("%d", entry.TicketQty))
		row.AddCell().SetString(entry.UserNumbers)
		row.AddCell().SetString(centsToDollars(entry.AmountPaidCents))
		row.AddCell().SetString(centsToDollars(entry.CreditsUsedCents))
		totalCard += entry.AmountPaidCents
		totalCredits += entry.CreditsUsedCents
	}

	sheet.AddRow()
	summaryData := [][]string{
		{"Participants", fmt.Sprintf("%d", len(entries))},
		{"Card Total", centsToDollars(totalCard)},
		{"Credits Total", centsToDollars(totalCredits)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=pool_roster_%d.xlsx", pool.ID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file")
		return
	}
	utils.LogInfo("Generated Excel roster for pool week %d", pool.ID)
}

// DownloadParticipantsPDF handles GET /admin/pool/export/pdf
func DownloadParticipantsPDF(c *gin.Context) {
	utils.LogInfo("DownloadParticipantsPDF called")

	poolWeekID, _ := strconv.ParseUint(c.Query("pool_week_id"), 10, 32)
	pool, err := resolvePoolForAdmin(config.DB, uint(poolWeekID))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	entries, err := paidEntriesWithUsers(config.DB, pool.ID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	utils.LogDebug("Exporting %d participants for pool week %d", len(entries), pool.ID)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Crown Heights Groups - Weekly Pool Roster")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Week: "+pool.WeekStart.In(utils.PoolLocation()).Format("2006-01-02")+
		" to "+pool.WeekEnd.In(utils.PoolLocation()).Format("2006-01-02"))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Status: "+pool.Status)
	pdf.Ln(10)

	headers := []string{"ID", "Name", "Email", "Lottery", "Tickets", "Numbers", "Card Paid", "Credits"}
	colWidths := []float64{15, 45, 60, 28, 18, 55, 25, 25}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var totalCard, totalCredits int64
	for _, entry := range entries {
		cols := []string{
			fmt.Sprintf("%d", entry.ID),
			entry.User.FullName(),
			entry.User.Email,
			entry.LotteryType,
			fmt.Sprintf("%d", entry.TicketQty),
			entry.UserNumbers,
			centsToDollars(entry.AmountPaidCents),
			centsToDollars(entry.CreditsUsedCents),
		}
		for i, col := range cols {
			pdf.CellFormat(colWidths[i], 8, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totalCard += entry.AmountPaidCents
		totalCredits += entry.CreditsUsedCents
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Participants: %d | Card Total: %s | Credits Total: %s",
		len(entries), centsToDollars(totalCard), centsToDollars(totalCredits)))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=pool_roster_%d.pdf", pool.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file")
		return
	}
	utils.LogInfo("Generated PDF roster for pool week %d", pool.ID)
}
