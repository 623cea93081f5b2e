package tickets

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"cupcakery/globals"
	"cupcakery/utils"
)

var orderPattern = regexp.MustCompile(`^ORD-\d{6}$`)

// ValidOrderNumber reports whether s looks like an order reference.
func ValidOrderNumber(s string) bool {
	return orderPattern.MatchString(s)
}

// Printer renders pickup slips: a QR code of the signed order reference,
// alone as PNG or on a one-page PDF.
type Printer struct {
	secret []byte
}

func NewPrinter(secret []byte) *Printer {
	return &Printer{secret: secret}
}

// Payload is "ORD-xxxxxx|signature".
func (p *Printer) Payload(orderNumber string) string {
	return orderNumber + "|" + p.sign(orderNumber)
}

// Verify checks a scanned payload and returns its order reference.
func (p *Printer) Verify(payload string) (string, bool) {
	orderNumber, sig, found := strings.Cut(payload, "|")
	if !found || !ValidOrderNumber(orderNumber) {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(p.sign(orderNumber))) {
		return "", false
	}
	return orderNumber, true
}

func (p *Printer) sign(data string) string {
	h := hmac.New(sha256.New, p.secret)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (p *Printer) QRCode(orderNumber string, size int) ([]byte, error) {
	return qrcode.Encode(p.Payload(orderNumber), qrcode.Medium, size)
}

// Slip builds the PDF pickup slip.
func (p *Printer) Slip(orderNumber string) ([]byte, error) {
	qrPNG, err := p.QRCode(orderNumber, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, globals.ShopName, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Order number", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, orderNumber, "", 1, "C", false, 0, "")

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 49, 50, 50, 50, false, imageOpts, 0, "")

	pdf.SetY(108)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, "Please show this slip at the counter when you pick up your order.", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ServeQR handles GET /thanks/qr.png?order=ORD-xxxxxx
func (p *Printer) ServeQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orderNumber := r.URL.Query().Get("order")
	if !ValidOrderNumber(orderNumber) {
		http.Error(w, "Invalid order number", http.StatusBadRequest)
		return
	}

	png, err := p.QRCode(orderNumber, 256)
	if err != nil {
		log.Printf("QR code error for %s: %v", orderNumber, err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// PrintSlip handles GET /thanks/slip.pdf?order=ORD-xxxxxx
func (p *Printer) PrintSlip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orderNumber := r.URL.Query().Get("order")
	if !ValidOrderNumber(orderNumber) {
		http.Error(w, "Invalid order number", http.StatusBadRequest)
		return
	}

	slip, err := p.Slip(orderNumber)
	if err != nil {
		log.Printf("Slip error for %s: %v", orderNumber, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pickup-"+orderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(slip)
}

// VerifyPickup handles GET /api/pickup/verify?code=... for the counter scanner.
func (p *Printer) VerifyPickup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orderNumber, ok := p.Verify(r.URL.Query().Get("code"))
	if !ok {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, map[string]any{"valid": false})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"valid": true, "order": orderNumber})
}
