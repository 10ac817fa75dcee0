package twilio

import "encoding/xml"

// MessagingResponse is the TwiML document returned from the inbound webhook.
type MessagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message Message  `xml:"Message"`
}

type Message struct {
	Body  string `xml:"Body"`
	Media string `xml:"Media,omitempty"`
}

// RenderMessagingResponse builds the webhook reply document for one message
// with an optional media attachment.
func RenderMessagingResponse(body, mediaURL string) ([]byte, error) {
	doc := MessagingResponse{
		Message: Message{Body: body, Media: mediaURL},
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
