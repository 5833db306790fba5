package Constants

import "ProSpine/Config"

// WhatsappGoService is the base URL of the self-hosted WhatsApp HTTP bridge.
var WhatsappGoService = Config.Load().WhatsappBridgeURL
