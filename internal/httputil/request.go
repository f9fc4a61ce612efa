package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data. On failure, the
// error response is written.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			NewError(c, Status(ErrRequestBodyEmpty), ErrRequestBodyEmpty)
			return ErrRequestBodyEmpty
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, Status(ErrInvalidBody), ErrInvalidBody)
		return ErrInvalidBody
	}

	return nil
}

// BindRecord reads a JSON object from the request body. Numbers keep their
// exact representation. On failure, the error response is written.
func BindRecord(c *gin.Context) (normalize.RawRecord, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		NewError(c, Status(ErrInvalidBody), ErrInvalidBody)
		return nil, ErrInvalidBody
	}

	if len(bytes.TrimSpace(body)) == 0 {
		NewError(c, Status(ErrRequestBodyEmpty), ErrRequestBodyEmpty)
		return nil, ErrRequestBodyEmpty
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var record normalize.RawRecord
	if err := dec.Decode(&record); err != nil || record == nil {
		log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("binding record")
		NewError(c, Status(ErrInvalidBody), ErrInvalidBody)
		return nil, ErrInvalidBody
	}

	return record, nil
}
