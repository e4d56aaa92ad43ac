package mocks

import (
	"fmt"

	"github.com/golang/mock/gomock"
	"github.com/iov-one/custody/errors"
)

// MoveCoinsBehaviour selects how a mocked controller answers MoveCoins.
type MoveCoinsBehaviour int

const (
	MoveCoinsOk            MoveCoinsBehaviour = iota // default behaviour
	MoveCoinsNoFunds       MoveCoinsBehaviour = 1
	MoveCoinsDatabaseError MoveCoinsBehaviour = 2
)

// NewControllerMock returns a controller whose MoveCoins calls all behave the
// same way.
func NewControllerMock(ctrl *gomock.Controller, move MoveCoinsBehaviour) *MockController {
	c := NewMockController(ctrl)
	switch move {
	case MoveCoinsOk:
		c.EXPECT().MoveCoins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	case MoveCoinsNoFunds:
		c.EXPECT().MoveCoins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.Wrap(errors.ErrAmount, "insufficient funds")).AnyTimes()
	case MoveCoinsDatabaseError:
		c.EXPECT().MoveCoins(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.Wrap(errors.ErrDatabase, "store unavailable")).AnyTimes()
	default:
		panic(fmt.Errorf("unknown MoveCoins mock behaviour: %d", move))
	}
	return c
}
