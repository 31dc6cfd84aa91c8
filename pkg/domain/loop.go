package domain

import (
	"errors"
	"fmt"
)

type LoopType string

const (
	Scaling      LoopType = "scaling"
	Alerting     LoopType = "alerting"
	Retrain      LoopType = "retrain"
	ModelCheck   LoopType = "modelcheck"
	Housekeeping LoopType = "housekeeping"
)

func (lt LoopType) String() string {
	return string(lt)
}

func (lt LoopType) IsKnown() bool {
	switch lt {
	case Scaling, Alerting, Retrain, ModelCheck, Housekeeping:
		return true
	default:
		return false
	}
}

func AsLoopType(s string) (LoopType, error) {
	l := LoopType(s)
	if l.IsKnown() {
		return l, nil
	}
	return l, fmt.Errorf(`%w: "%s"`, ErrUnknownLoopType, s)
}

var ErrUnknownLoopType = errors.New("unknown loop type")
