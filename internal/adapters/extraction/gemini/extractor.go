package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/uneural/treasury_backend/internal/apperrors"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
)

// DefaultModelName is used when no model is configured.
const DefaultModelName = "gemini-2.5-flash"

const extractionPrompt = `Extrae los datos contables de la siguiente información. La información puede provenir de una imagen, un audio transcrito o un video.
Texto proporcionado por el usuario: %q.
Sigue estrictamente el esquema JSON proporcionado. Si un campo no está presente, omítelo.
Determina si es un 'income' (ingreso) o 'expense' (gasto).`

// transactionSchema constrains the model output to the structured
// payload the ingestion pipeline expects.
var transactionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category":    {Type: genai.TypeString, Description: "La categoría del gasto o ingreso. Ej: 'logistica/alimentos', 'patrocinios'."},
		"vendor":      {Type: genai.TypeString, Description: "El nombre del proveedor o la fuente del ingreso."},
		"date":        {Type: genai.TypeString, Description: "La fecha de la transacción en formato YYYY-MM-DD."},
		"amount":      {Type: genai.TypeNumber, Description: "El monto total de la transacción."},
		"currency":    {Type: genai.TypeString, Enum: []string{"COP", "USD", "EUR"}, Description: "La moneda de la transacción (COP, USD, EUR)."},
		"tax":         {Type: genai.TypeNumber, Description: "El monto del impuesto. Si no hay, es 0."},
		"method":      {Type: genai.TypeString, Enum: []string{"efectivo", "transferencia", "tarjeta_credito", "tarjeta_debito", "otro"}, Description: "El método de pago."},
		"description": {Type: genai.TypeString, Description: "Una descripción breve y clara de la transacción."},
		"type":        {Type: genai.TypeString, Enum: []string{"expense", "income", "transfer"}, Description: "El tipo de transacción (expense, income, transfer)."},

		"invoiceNumber":   {Type: genai.TypeString, Description: "El número de la factura, si está presente."},
		"ieeeChapter":     {Type: genai.TypeString, Description: "Capítulo de IEEE asociado, si aplica (ej. 'CS', 'ComSoc')."},
		"eventType":       {Type: genai.TypeString, Enum: []string{"workshop", "meetup", "talk", "conference"}, Description: "Tipo de evento, si aplica."},
		"paymentDueDate":  {Type: genai.TypeString, Description: "Fecha de vencimiento del pago en formato YYYY-MM-DD, si aplica."},
		"reimbursementTo": {Type: genai.TypeString, Description: "Nombre o ID del miembro a reembolsar, si aplica."},
		"fundingSource":   {Type: genai.TypeString, Description: "Fuente de los fondos (ej. 'IEEE_SAC', 'Faculty_Sponsorship')."},
		"attendeeCount":   {Type: genai.TypeInteger, Description: "Número de asistentes al evento, si aplica."},
		"relatedTaskIds":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "IDs de tareas relacionadas en Notion/otro sistema."},
		"recurring":       {Type: genai.TypeBoolean, Description: "Indica si es un gasto/ingreso recurrente."},
		"department":      {Type: genai.TypeString, Enum: []string{"Ops", "Comms", "Programs", "Partnerships"}, Description: "Departamento interno que realiza el gasto."},
	},
	Required: []string{"category", "vendor", "date", "amount", "currency", "tax", "method", "description", "type"},
}

// Extractor implements the extraction boundary against the Gemini API.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor creates a Gemini-backed extractor. Model may be empty, in
// which case DefaultModelName is used.
func NewExtractor(ctx context.Context, apiKey string, model string) (*Extractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModelName
	}
	return &Extractor{client: client, model: model}, nil
}

var _ portssvc.TransactionExtractor = (*Extractor)(nil)

// ExtractTransaction sends the attachment and free text to the model and
// decodes the structured payload. Every failure mode of the boundary,
// transport, empty response or undecodable output, wraps ErrExtraction so
// the orchestrator can report the ingestion as failed without persisting
// anything.
func (e *Extractor) ExtractTransaction(ctx context.Context, input dto.ExtractionInput) (*dto.ExtractedTransaction, error) {
	parts := []*genai.Part{}
	if len(input.Attachment) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: input.MIMEType,
				Data:     input.Attachment,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: fmt.Sprintf(extractionPrompt, input.Text)})

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   transactionSchema,
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("%w: model call failed: %v", apperrors.ErrExtraction, err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("%w: empty response from model", apperrors.ErrExtraction)
	}

	extracted, err := DecodePayload(rawText)
	if err != nil {
		return nil, err
	}
	return extracted, nil
}

// DecodePayload turns raw model output into an ExtractedTransaction.
// Exposed separately so the decoding path is testable without a live
// model behind it.
func DecodePayload(raw string) (*dto.ExtractedTransaction, error) {
	clean := cleanModelJSON(raw)

	var extracted dto.ExtractedTransaction
	if err := json.Unmarshal([]byte(clean), &extracted); err != nil {
		return nil, fmt.Errorf("%w: undecodable model output: %v", apperrors.ErrExtraction, err)
	}
	return &extracted, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the response MIME type instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON object if junk survives.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
