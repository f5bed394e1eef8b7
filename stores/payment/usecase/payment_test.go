package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/payment"
	"github.com/openxmarket/goapi/domain/payment/mocks"
)

var mockCtx = ctx.Background()

type paymentSuite struct {
	suite.Suite

	balance *mocks.BalanceRepo
	im      payment.ValueTransfer
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(paymentSuite))
}

func (s *paymentSuite) SetupTest() {
	s.balance = &mocks.BalanceRepo{}
	s.im = New(&PaymentUseCaseCfg{BalanceRepo: s.balance})
}

func (s *paymentSuite) TestSend() {
	from := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	to := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")
	amount := big.NewInt(95)

	s.balance.On("Debit", mock.Anything, from, amount).Return(nil).Once()
	s.balance.On("Credit", mock.Anything, to, amount).Return(nil).Once()
	s.NoError(s.im.Send(mockCtx, from, to, amount))
	s.balance.AssertExpectations(s.T())
}

func (s *paymentSuite) TestSendZeroIsNoop() {
	from := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	to := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")

	s.NoError(s.im.Send(mockCtx, from, to, big.NewInt(0)))
	s.balance.AssertNotCalled(s.T(), "Debit", mock.Anything, mock.Anything, mock.Anything)
	s.balance.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func (s *paymentSuite) TestSendInsufficientFunds() {
	from := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	to := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")
	amount := big.NewInt(95)

	s.balance.On("Debit", mock.Anything, from, amount).Return(domain.ErrInsufficientFunds).Once()
	s.Equal(domain.ErrInsufficientFunds, s.im.Send(mockCtx, from, to, amount))
	s.balance.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func (s *paymentSuite) TestDeposit() {
	to := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")

	s.balance.On("Credit", mock.Anything, to, big.NewInt(1000)).Return(nil).Once()
	s.NoError(s.im.Deposit(mockCtx, to, big.NewInt(1000)))

	s.Equal(domain.ErrBadParamInput, s.im.Deposit(mockCtx, to, big.NewInt(0)))
	s.Equal(domain.ErrBadParamInput, s.im.Deposit(mockCtx, to, big.NewInt(-5)))
}

func (s *paymentSuite) TestBalanceOf() {
	address := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")

	s.balance.On("Get", mock.Anything, address).Return(&payment.Balance{Address: address, Amount: "1000"}, nil).Once()
	b, err := s.im.BalanceOf(mockCtx, address)
	s.Require().NoError(err)
	s.Equal(big.NewInt(1000), b)

	s.balance.On("Get", mock.Anything, address).Return(nil, domain.ErrNotFound).Once()
	b, err = s.im.BalanceOf(mockCtx, address)
	s.Require().NoError(err)
	s.Equal(big.NewInt(0), b)
}
