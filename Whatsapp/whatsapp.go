package Whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"ProSpine/Constants"

	"github.com/gin-gonic/gin"
)

// SendMessage relays one outbound message through the bridge service.
func SendMessage(phone, message string) error {
	client := &http.Client{}

	url := Constants.WhatsappGoService + "/send/message"
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("whatsapp bridge returned %d: %s", res.StatusCode, string(body))
	}
	return nil
}

func CheckLogin(c *gin.Context) {
	client := &http.Client{}

	url := Constants.WhatsappGoService + "/app/devices"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}

	var output struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Results []struct {
			Name   string `json:"name"`
			Device string `json:"device"`
		}
	}
	if err = json.Unmarshal(body, &output); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}

	if len(output.Results) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Not Logged In"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged In"})
}

func GetQRCode(c *gin.Context) {
	client := &http.Client{}

	urlLogin := Constants.WhatsappGoService + "/app/login"
	req, err := http.NewRequest(http.MethodGet, urlLogin, nil)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}

	var output struct {
		Results struct {
			QRLink string `json:"qr_link"`
		} `json:"results"`
	}
	if err = json.Unmarshal(body, &output); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}

	req, err = http.NewRequest(http.MethodGet, output.Results.QRLink, nil)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	req.Header.Add("Content-Type", "application/json")

	res, err = client.Do(req)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	defer res.Body.Close()

	body, err = io.ReadAll(res.Body)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Bridge Unreachable"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=qr.png")
	c.Data(http.StatusOK, "application/octet-stream", body)
}
