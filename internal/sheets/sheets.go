package sheets

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"chatter-trainer/internal/config"
	"chatter-trainer/internal/logger"
	"chatter-trainer/internal/sanitize"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	UnnamedTrainee  = "Unnamed"
	TranscriptLimit = 20000
	FeedbackLimit   = 10000

	driveScope = "https://www.googleapis.com/auth/drive"
)

// Row is one finished session as it lands in the worksheet.
type Row struct {
	Timestamp   time.Time
	TraineeName string
	Transcript  string
	Feedback    string
}

// Values returns the four worksheet cells in column order.
func (r Row) Values() []interface{} {
	name := r.TraineeName
	if name == "" {
		name = UnnamedTrainee
	}
	return []interface{}{
		r.Timestamp.Format(TimestampLayout),
		name,
		sanitize.Clean(r.Transcript, TranscriptLimit),
		sanitize.Clean(r.Feedback, FeedbackLimit),
	}
}

// Logger appends session rows to a worksheet. A fresh API client is built
// for every append.
type Logger struct {
	sheetID   string
	worksheet string
	options   func(ctx context.Context) ([]option.ClientOption, error)
	log       *logger.Logger
}

// New authenticates with the service account JSON from cfg.
func New(cfg *config.Config, log *logger.Logger) *Logger {
	credsJSON := []byte(cfg.GoogleServiceAccountJSON)
	return &Logger{
		sheetID:   cfg.GoogleSheetID,
		worksheet: cfg.GoogleWorksheet,
		log:       log,
		options: func(ctx context.Context) ([]option.ClientOption, error) {
			creds, err := google.CredentialsFromJSON(ctx, credsJSON, sheets.SpreadsheetsScope, driveScope)
			if err != nil {
				return nil, fmt.Errorf("parse service account: %w", err)
			}
			return []option.ClientOption{option.WithCredentials(creds)}, nil
		},
	}
}

// NewWithOptions uses fixed client options, e.g. a custom endpoint.
func NewWithOptions(sheetID, worksheet string, log *logger.Logger, opts ...option.ClientOption) *Logger {
	return &Logger{
		sheetID:   sheetID,
		worksheet: worksheet,
		log:       log,
		options: func(context.Context) ([]option.ClientOption, error) {
			return opts, nil
		},
	}
}

func (l *Logger) AppendSession(ctx context.Context, row Row) error {
	ctx, span := otel.Tracer("sheets").Start(ctx, "AppendSession")
	defer span.End()
	span.SetAttributes(attribute.String("worksheet", l.worksheet))

	opts, err := l.options(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("create sheets client: %w", err)
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{row.Values()}}
	resp, err := srv.Spreadsheets.Values.Append(l.sheetID, l.worksheet, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		span.RecordError(err)
		l.log.Logger(ctx).Error("[Sheets] Append failed", zap.Error(err), zap.String("worksheet", l.worksheet))
		return fmt.Errorf("append row: %w", err)
	}

	var updated string
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	l.log.Logger(ctx).Info("[Sheets] Session row appended", zap.String("range", updated))
	return nil
}
