package Whatsapp

import (
	"log"

	"ProSpine/Config"
	"ProSpine/Models"

	whatsapp_chatbot_golang "github.com/green-api/whatsapp-chatbot-golang"
)

// Listen starts the inbound chatbot loop. Incoming messages are saved as
// Inquiry rows so reception can follow up from the dashboard.
func Listen() {
	cfg := Config.Load()
	if cfg.GreenAPIInstance == "" || cfg.GreenAPIToken == "" {
		log.Println("Green API credentials not set, WhatsApp listener disabled")
		return
	}

	bot := whatsapp_chatbot_golang.NewBot(cfg.GreenAPIInstance, cfg.GreenAPIToken)

	bot.SetStartScene(StartScene{})

	bot.StartReceivingNotifications()
}

type StartScene struct {
}

func (s StartScene) Start(bot *whatsapp_chatbot_golang.Bot) {
	bot.IncomingMessageHandler(func(message *whatsapp_chatbot_golang.Notification) {
		text, err := message.Text()
		if err != nil {
			return
		}

		inquiry := Models.Inquiry{
			Message: text,
		}
		if err := Models.SaveInquiry(Models.DB, &inquiry); err != nil {
			log.Println(err)
		}
	})
}
