package FirebaseMessaging

import (
	"context"
	"errors"
	"log"
	"time"

	"ProSpine/Config"
	"ProSpine/Models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	app             *firebase.App
	messagingClient *messaging.Client
)

// Setup initializes the messaging client. Push is optional: without
// credentials the process runs fine and SendMessage becomes a no-op
// with an error.
func Setup() {
	cfg := Config.Load()

	ctx := context.Background()
	var err error

	if cfg.FirebaseCredentialsPath != "" {
		opt := option.WithCredentialsFile(cfg.FirebaseCredentialsPath)
		app, err = firebase.NewApp(ctx, nil, opt)
	} else {
		app, err = firebase.NewApp(ctx, nil)
	}
	if err != nil {
		log.Printf("Firebase app not initialized, push disabled: %v", err)
		return
	}

	messagingClient, err = app.Messaging(ctx)
	if err != nil {
		log.Printf("Firebase messaging client not initialized, push disabled: %v", err)
		return
	}

	log.Println("Firebase messaging client initialized successfully")
}

func SendMessage(req Models.NotificationRequest) error {
	if messagingClient == nil {
		return errors.New("firebase messaging not configured")
	}
	if len(req.Tokens) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:    "default",
				Priority: messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: req.Title,
						Body:  req.Body,
					},
					Sound: "default",
				},
			},
		},
	}

	if len(req.Tokens) == 1 {
		message.Token = req.Tokens[0]
		if _, err := messagingClient.Send(ctx, message); err != nil {
			log.Printf("Error sending message: %v", err)
			return err
		}
		return nil
	}

	_, err := messagingClient.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       req.Tokens,
		Notification: message.Notification,
		Android:      message.Android,
		APNS:         message.APNS,
	})
	if err != nil {
		log.Printf("Error sending multicast message: %v", err)
		return err
	}
	return nil
}
