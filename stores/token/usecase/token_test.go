package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/nft"
	"github.com/openxmarket/goapi/domain/nft/mocks"
)

var mockCtx = ctx.Background()

type tokenSuite struct {
	suite.Suite

	holding *mocks.HoldingRepo
	im      nft.Authority
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(tokenSuite))
}

func (s *tokenSuite) SetupTest() {
	s.holding = &mocks.HoldingRepo{}
	s.im = New(&TokenUseCaseCfg{HoldingRepo: s.holding})
}

func (s *tokenSuite) TestOwnerOf() {
	id := nft.Id{ChainId: 1, Collection: "0x9a38dec0590abc8c883d72e52391090e948ddf12", TokenId: "7"}
	owner := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")

	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: owner}, nil).Once()

	res, err := s.im.OwnerOf(mockCtx, id)
	s.Require().NoError(err)
	s.Equal(owner, res)

	s.holding.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	_, err = s.im.OwnerOf(mockCtx, id)
	s.Equal(domain.ErrNotFound, err)
}

func (s *tokenSuite) TestIsApproved() {
	id := nft.Id{ChainId: 1, Collection: "0x9a38dec0590abc8c883d72e52391090e948ddf12", TokenId: "7"}
	owner := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	operator := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")

	// owner is always approved for itself
	res, err := s.im.IsApproved(mockCtx, id, owner, owner)
	s.Require().NoError(err)
	s.True(res)

	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: owner, Approved: operator}, nil).Once()
	res, err = s.im.IsApproved(mockCtx, id, owner, operator)
	s.Require().NoError(err)
	s.True(res)

	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: owner}, nil).Once()
	res, err = s.im.IsApproved(mockCtx, id, owner, operator)
	s.Require().NoError(err)
	s.False(res)
}

func (s *tokenSuite) TestTransfer() {
	id := nft.Id{ChainId: 1, Collection: "0x9a38dec0590abc8c883d72e52391090e948ddf12", TokenId: "7"}
	from := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	to := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")
	operator := domain.Address("0x9a3f39a2c7ddb8a312e36c64f0b4e6e263ab3154")

	// the owner moves its own asset
	s.holding.On("TransferOwner", mock.Anything, id, from, to).Return(nil).Once()
	s.NoError(s.im.Transfer(mockCtx, id, from, from, to))

	// an approved operator moves it on the owner's behalf
	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: from, Approved: operator}, nil).Once()
	s.holding.On("TransferOwner", mock.Anything, id, from, to).Return(nil).Once()
	s.NoError(s.im.Transfer(mockCtx, id, operator, from, to))

	s.holding.On("TransferOwner", mock.Anything, id, to, from).Return(domain.ErrNotOwner).Once()
	s.Equal(domain.ErrNotOwner, s.im.Transfer(mockCtx, id, to, to, from))
}

func (s *tokenSuite) TestTransferWithoutApproval() {
	id := nft.Id{ChainId: 1, Collection: "0x9a38dec0590abc8c883d72e52391090e948ddf12", TokenId: "7"}
	from := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	to := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")
	operator := domain.Address("0x9a3f39a2c7ddb8a312e36c64f0b4e6e263ab3154")
	other := domain.Address("0x5a0b54d5dc17e0aadc383d2db43b0a0d3e029c4c")

	// approval was cleared
	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: from}, nil).Once()
	s.Equal(domain.ErrNotApproved, s.im.Transfer(mockCtx, id, operator, from, to))

	// the owner re-approved someone else
	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: from, Approved: other}, nil).Once()
	s.Equal(domain.ErrNotApproved, s.im.Transfer(mockCtx, id, operator, from, to))

	s.holding.AssertNotCalled(s.T(), "TransferOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *tokenSuite) TestMint() {
	id := nft.Id{ChainId: 1, Collection: "0x9a38dec0590abc8c883d72e52391090e948ddf12", TokenId: "7"}
	owner := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")

	s.holding.On("FindOne", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()
	s.holding.On("Upsert", mock.Anything, mock.MatchedBy(func(h *nft.Holding) bool {
		return h.Id == id && h.Owner == owner
	})).Return(nil).Once()
	s.NoError(s.im.Mint(mockCtx, id, owner))

	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: owner}, nil).Once()
	s.Equal(domain.ErrConflict, s.im.Mint(mockCtx, id, owner))
}

func (s *tokenSuite) TestApprove() {
	id := nft.Id{ChainId: 1, Collection: "0x9a38dec0590abc8c883d72e52391090e948ddf12", TokenId: "7"}
	owner := domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
	operator := domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")

	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: owner}, nil).Once()
	s.holding.On("Patch", mock.Anything, id, mock.MatchedBy(func(p nft.HoldingPatchable) bool {
		return p.Approved != nil && *p.Approved == operator
	})).Return(nil).Once()
	s.NoError(s.im.Approve(mockCtx, id, owner, operator))

	s.holding.On("FindOne", mock.Anything, id).Return(&nft.Holding{Id: id, Owner: owner}, nil).Once()
	s.Equal(domain.ErrNotOwner, s.im.Approve(mockCtx, id, operator, operator))
}
