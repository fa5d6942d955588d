package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ishanbagra18/artfolio-server/config"
)

const graphBaseURL = "https://graph.facebook.com"

// WhatsApp sends template messages through the Meta Graph API.
type WhatsApp struct {
	cfg     config.WhatsAppConfig
	baseURL string
	client  *http.Client
}

func NewWhatsApp(cfg config.WhatsAppConfig) *WhatsApp {
	return &WhatsApp{
		cfg:     cfg,
		baseURL: graphBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type waTemplateMessage struct {
	MessagingProduct string     `json:"messaging_product"`
	To               string     `json:"to"`
	Type             string     `json:"type"`
	Template         waTemplate `json:"template"`
}

type waTemplate struct {
	Name       string        `json:"name"`
	Language   waLanguage    `json:"language"`
	Components []waComponent `json:"components,omitempty"`
}

type waLanguage struct {
	Code string `json:"code"`
}

type waComponent struct {
	Type       string        `json:"type"`
	Parameters []waParameter `json:"parameters"`
}

type waParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (w *WhatsApp) Name() string { return "whatsapp" }

// Send posts the configured template with text as its single body parameter.
func (w *WhatsApp) Send(ctx context.Context, phone, text string) error {
	payload := waTemplateMessage{
		MessagingProduct: "whatsapp",
		To:               phone,
		Type:             "template",
		Template: waTemplate{
			Name:     w.cfg.TemplateName,
			Language: waLanguage{Code: w.cfg.Language},
		},
	}
	if text != "" {
		payload.Template.Components = []waComponent{{
			Type:       "body",
			Parameters: []waParameter{{Type: "text", Text: text}},
		}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", w.baseURL, w.cfg.APIVersion, w.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("whatsapp api status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
