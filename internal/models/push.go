package models

// PushMessage is the data payload carried by a broadcast push message.
// ImageID correlates the message to an alert; today it only triggers a feed
// refresh, not deep navigation.
type PushMessage struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	ImageID string `json:"image_id"`
}
