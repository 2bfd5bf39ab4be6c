package worker

// report_worker.go
// Processes Z-report jobs from QueueShiftReport.
// Renders the closed shift's frozen summary to PDF and enqueues an email
// job so the back office receives the reconciliation sheet.

import (
	"context"
	"encoding/json"
	"fmt"

	"tillpos/internal/infra"
	"tillpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ShiftReportJobPayload is the job envelope sent to QueueShiftReport.
type ShiftReportJobPayload struct {
	ShiftID string `json:"shift_id"`
}

// ShiftReportWorker renders end-of-shift Z-report PDFs. The shift close
// itself already committed; a failure here means a missing report, never
// a broken shift.
type ShiftReportWorker struct {
	shiftRepo    repository.ShiftRepository
	dispatcher   *Dispatcher
	businessName string
	storagePath  string
	reportEmail  string
}

func NewShiftReportWorker(
	shiftRepo repository.ShiftRepository,
	dispatcher *Dispatcher,
	businessName string,
	storagePath string,
	reportEmail string,
) *ShiftReportWorker {
	return &ShiftReportWorker{
		shiftRepo:    shiftRepo,
		dispatcher:   dispatcher,
		businessName: businessName,
		storagePath:  storagePath,
		reportEmail:  reportEmail,
	}
}

// Process handles a single shift_report job:
//  1. Parse ShiftReportJobPayload from the job envelope
//  2. Fetch the closed Shift from DB
//  3. Render the Z-report PDF
//  4. Enqueue an email job to the configured back-office address
//
// Returns an error when the report could not be produced, routing the job
// to the DLQ for manual inspection.
func (w *ShiftReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ShiftReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("report_worker: invalid payload: %w", err)
	}

	shiftID, err := uuid.Parse(payload.ShiftID)
	if err != nil {
		return fmt.Errorf("report_worker: invalid shift_id %q: %w", payload.ShiftID, err)
	}

	shift, err := w.shiftRepo.FindByID(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("report_worker: shift %s not found: %w", payload.ShiftID, err)
	}

	pdfPath, err := infra.GenerateShiftReportPDF(shift, w.businessName, w.storagePath)
	if err != nil {
		return fmt.Errorf("report_worker: PDF generation failed: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("shift_id", payload.ShiftID).Msg("report_worker: Z-report generated")

	if w.reportEmail == "" {
		// No back-office address configured — the PDF on disk is the deliverable.
		return nil
	}

	closedAt := ""
	if shift.ClosedAt != nil {
		closedAt = shift.ClosedAt.Format("02/01/2006 15:04")
	}
	emailJob := EmailJobPayload{
		ToEmail: w.reportEmail,
		Subject: fmt.Sprintf("%s — Z-report %s", w.businessName, closedAt),
		Body:    "Attached is the end-of-shift reconciliation report.",
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("shift_id", payload.ShiftID).Msg("report_worker: failed to enqueue email")
	}
	return nil
}
