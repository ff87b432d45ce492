package pet

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// IDCodec converts between external string ids and store ObjectIDs.
type IDCodec struct {
	debug  bool
	logger *zap.Logger
}

// NewIDCodec creates an IDCodec. Invalid ids are logged only when debug is set.
func NewIDCodec(debug bool, logger *zap.Logger) *IDCodec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IDCodec{debug: debug, logger: logger}
}

// Validate parses raw into an ObjectID.
func (c *IDCodec) Validate(raw string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		if c.debug {
			c.logger.Warn("invalid object id", zap.String("id", raw))
		}
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}
	return id, nil
}

// ToExternal renders id for API payloads.
func (c *IDCodec) ToExternal(id bson.ObjectID) string {
	return id.Hex()
}
