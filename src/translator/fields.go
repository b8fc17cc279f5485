package translator

import (
	"strconv"

	"fix-gateway/src/errs"

	"github.com/quickfixgo/quickfix"
)

// -----------------------------------------------------------------------------
// Field access helpers shared by the decoders. Required fields raise a
// MalformedMessageError naming the tag; optional fields report absence
// explicitly so callers never confuse "missing" with a zero value.
// -----------------------------------------------------------------------------

// fieldSource is the common surface of *quickfix.FieldMap holders (message
// bodies and repeating group entries).
type fieldSource interface {
	GetString(tag quickfix.Tag) (string, quickfix.MessageRejectError)
	Has(tag quickfix.Tag) bool
}

// -----------------------------------------------------------------------------

func reqString(msgType string, fm fieldSource, tag quickfix.Tag) (string, error) {
	v, err := fm.GetString(tag)
	if err != nil {
		return "", &errs.MalformedMessageError{MsgType: msgType, Tag: int(tag)}
	}
	return v, nil
}

func optString(fm fieldSource, tag quickfix.Tag) (string, bool) {
	if !fm.Has(tag) {
		return "", false
	}
	v, err := fm.GetString(tag)
	if err != nil {
		return "", false
	}
	return v, true
}

// -----------------------------------------------------------------------------

func optFloat(fm fieldSource, tag quickfix.Tag) *float64 {
	s, ok := optString(fm, tag)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func optInt(fm fieldSource, tag quickfix.Tag) *int {
	s, ok := optString(fm, tag)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// -----------------------------------------------------------------------------

func reqInt(msgType string, fm fieldSource, tag quickfix.Tag) (int, error) {
	s, err := reqString(msgType, fm, tag)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.Atoi(s)
	if perr != nil {
		return 0, &errs.MalformedMessageError{MsgType: msgType, Tag: int(tag)}
	}
	return v, nil
}
