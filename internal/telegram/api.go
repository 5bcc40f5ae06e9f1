package telegram

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type requester interface {
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

// NewBotAPI builds a client without the getMe round trip that
// tgbotapi.NewBotAPI performs, so a bad token surfaces on the first send.
func NewBotAPI(token, endpoint string, client *http.Client) *tgbotapi.BotAPI {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}
	api := &tgbotapi.BotAPI{Token: token, Client: client, Buffer: 100}
	api.SetAPIEndpoint(endpoint)
	return api
}
