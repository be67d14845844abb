package pubsub

import (
	"encoding/json"

	"storerating/internal/domain/service"
	"storerating/internal/errors"
)

// EventTypeRatingSubmitted is sent as the event_type attribute/header.
const EventTypeRatingSubmitted = "rating.submitted"

// encodeRatingSubmitted returns the JSON body, the message key and transport attributes.
// The store id is the key so one store's events stay ordered on partitioned transports.
func encodeRatingSubmitted(event *service.RatingSubmittedEvent) (body []byte, key string, attrs map[string]string, err error) {
	body, err = json.Marshal(event)
	if err != nil {
		return nil, "", nil, errors.WithStack(err)
	}

	attrs = map[string]string{
		"event_type": EventTypeRatingSubmitted,
		"store_id":   event.StoreID,
		"user_id":    event.UserID,
	}
	if event.RequestID != "" {
		attrs["request_id"] = event.RequestID
	}

	return body, event.StoreID, attrs, nil
}
