// Package ticket issues registration ticket tokens and renders them as QR
// codes and printable PDF tickets.
package ticket

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	TokenPrefix = "TKT-"
	tokenBytes  = 16
)

// NewToken returns a fresh ticket token: TKT- followed by 32 uppercase hex
// characters from crypto/rand. Uniqueness is enforced by the database's
// unique index on registrations.ticket_token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate ticket token: %w", err)
	}
	return TokenPrefix + strings.ToUpper(hex.EncodeToString(b)), nil
}

// QRPNG encodes the token into a 256x256 PNG.
func QRPNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

type Details struct {
	EventTitle   string
	Location     string
	StartAt      time.Time
	EndAt        time.Time
	AttendeeName string
	Token        string
}

// PDF renders an A5 ticket with the event details and the QR-encoded token.
func PDF(d Details) ([]byte, error) {
	png, err := QRPNG(d.Token)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, d.EventTitle, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Attendee: "+d.AttendeeName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf(
		"When: %s - %s",
		d.StartAt.Format("Mon, 02 Jan 2006 15:04"),
		d.EndAt.Format("15:04"),
	), "", 1, "L", false, 0, "")
	if d.Location != "" {
		pdf.CellFormat(0, 7, "Where: "+d.Location, "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
	pageW, _ := pdf.GetPageSize()
	const qrSize = 68.0
	pdf.ImageOptions("ticket-qr", (pageW-qrSize)/2, 70, qrSize, qrSize, false, opts, 0, "")

	pdf.SetY(142)
	pdf.SetFont("Courier", "", 9)
	pdf.CellFormat(0, 6, d.Token, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Present this ticket at the entrance for check-in.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}
