// ABOUTME: Tagged-union decoding of flat deferred push payloads
// ABOUTME: Required fields are validated per type up front, yielding a single DecodeError

package push

import (
	"fmt"
	"strconv"

	"github.com/nvdw/otacheck/internal/models"
)

// Payload keys of the flat string map delivered by the push transport.
const (
	keyType           = "TYPE"
	keyDeviceName     = "DEVICE_NAME"
	keyVersionNumber  = "NEW_VERSION_NUMBER"
	keyEnglishMessage = "ENGLISH_MESSAGE"
	keyDutchMessage   = "DUTCH_MESSAGE"
	keyNewsItemID     = "NEWS_ITEM_ID"
	keyNewsItemIsBump = "NEWS_ITEM_IS_BUMP"
)

// DecodeError describes why a push payload could not be decoded.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("push payload field %s: %s", e.Field, e.Reason)
}

// DecodeMessage validates and decodes a flat push payload into a typed
// NotificationMessage. Any missing or invalid field for the declared type
// produces a DecodeError; no partial messages escape.
func DecodeMessage(payload map[string]string) (*models.NotificationMessage, error) {
	typ := models.NotificationType(payload[keyType])
	if payload[keyType] == "" {
		return nil, &DecodeError{Field: keyType, Reason: "missing"}
	}
	if !typ.Known() {
		return nil, &DecodeError{Field: keyType, Reason: fmt.Sprintf("unknown type %q", payload[keyType])}
	}

	msg := &models.NotificationMessage{Type: typ}

	switch typ {
	case models.NotificationNewDevice:
		if payload[keyDeviceName] == "" {
			return nil, &DecodeError{Field: keyDeviceName, Reason: "missing"}
		}
		msg.DeviceName = payload[keyDeviceName]

	case models.NotificationNewVersion:
		if payload[keyDeviceName] == "" {
			return nil, &DecodeError{Field: keyDeviceName, Reason: "missing"}
		}
		if payload[keyVersionNumber] == "" {
			return nil, &DecodeError{Field: keyVersionNumber, Reason: "missing"}
		}
		msg.DeviceName = payload[keyDeviceName]
		msg.VersionNumber = payload[keyVersionNumber]

	case models.NotificationGeneral:
		if payload[keyEnglishMessage] == "" {
			return nil, &DecodeError{Field: keyEnglishMessage, Reason: "missing"}
		}
		msg.EnglishMessage = payload[keyEnglishMessage]
		msg.DutchMessage = payload[keyDutchMessage]

	case models.NotificationNews:
		if payload[keyEnglishMessage] == "" {
			return nil, &DecodeError{Field: keyEnglishMessage, Reason: "missing"}
		}
		if payload[keyNewsItemID] == "" {
			return nil, &DecodeError{Field: keyNewsItemID, Reason: "missing"}
		}
		id, err := strconv.ParseInt(payload[keyNewsItemID], 10, 64)
		if err != nil {
			return nil, &DecodeError{Field: keyNewsItemID, Reason: "not a valid id"}
		}
		msg.EnglishMessage = payload[keyEnglishMessage]
		msg.DutchMessage = payload[keyDutchMessage]
		msg.NewsItemID = id
		if raw, ok := payload[keyNewsItemIsBump]; ok && raw != "" {
			bump, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, &DecodeError{Field: keyNewsItemIsBump, Reason: "not a valid bool"}
			}
			msg.IsBump = bump
		}
	}

	return msg, nil
}
