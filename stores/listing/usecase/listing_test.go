package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/domain/event"
	eventMocks "github.com/openxmarket/goapi/domain/event/mocks"
	"github.com/openxmarket/goapi/domain/listing"
	listingMocks "github.com/openxmarket/goapi/domain/listing/mocks"
	"github.com/openxmarket/goapi/domain/marketplace"
	marketplaceMocks "github.com/openxmarket/goapi/domain/marketplace/mocks"
	"github.com/openxmarket/goapi/domain/nft"
	nftMocks "github.com/openxmarket/goapi/domain/nft/mocks"
	paymentMocks "github.com/openxmarket/goapi/domain/payment/mocks"
	"github.com/openxmarket/goapi/service/cache/provider/primitive"
)

var mockCtx = bCtx.Background()

const (
	marketAddr = domain.Address("0x9a3f39a2c7ddb8a312e36c64f0b4e6e263ab3154")
	feeOwner   = domain.Address("0x5a0b54d5dc17e0aadc383d2db43b0a0d3e029c4c")
	alice      = domain.Address("0x1d56ff0e7df1bf6df052d76e0cd27ccb8b342b9e")
	bob        = domain.Address("0xc37c41601bc88c91b6569c701f08d37fa0f565f0")
)

// passthroughTx runs the callback outside any session, good enough for unit
// tests exercising the settlement ordering
type passthroughTx struct{}

func (passthroughTx) RunWithTransaction(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
	return run(c)
}

type listingUseCaseSuite struct {
	suite.Suite

	listing   *listingMocks.Repo
	event     *eventMocks.Repo
	config    *marketplaceMocks.ConfigRepo
	authority *nftMocks.Authority
	payment   *paymentMocks.ValueTransfer
	im        listing.Usecase
}

func TestListingUseCaseSuite(t *testing.T) {
	suite.Run(t, new(listingUseCaseSuite))
}

func (s *listingUseCaseSuite) SetupTest() {
	s.listing = &listingMocks.Repo{}
	s.event = &eventMocks.Repo{}
	s.config = &marketplaceMocks.ConfigRepo{}
	s.authority = &nftMocks.Authority{}
	s.payment = &paymentMocks.ValueTransfer{}
	s.im = New(&ListingUseCaseCfg{
		ListingRepo:        s.listing,
		EventRepo:          s.event,
		ConfigRepo:         s.config,
		Authority:          s.authority,
		Payment:            s.payment,
		TxRunner:           passthroughTx{},
		MarketplaceAddress: marketAddr,
	})
}

func (s *listingUseCaseSuite) mockNft() nft.Id {
	return nft.Id{ChainId: 1, Collection: bob, TokenId: "7"}
}

func (s *listingUseCaseSuite) mockListing() *listing.Listing {
	return &listing.Listing{
		Id:           3,
		Nft:          s.mockNft(),
		Seller:       alice,
		Price:        "100",
		DisplayPrice: 100,
		Active:       true,
	}
}

func (s *listingUseCaseSuite) TestCreateListing() {
	id := s.mockNft()

	s.authority.On("OwnerOf", mock.Anything, id).Return(alice, nil).Once()
	s.authority.On("IsApproved", mock.Anything, id, alice, marketAddr).Return(true, nil).Once()
	s.listing.On("NextId", mock.Anything).Return(domain.ListingId(1), nil).Once()
	s.listing.On("Insert", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.Id == 1 && l.Seller == alice && l.Price == "100" && l.Active
	})).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.MatchedBy(func(ev *event.MarketplaceEvent) bool {
		return ev.Type == event.TypeListingCreated && ev.ListingId == 1
	})).Return(nil).Once()

	l, err := s.im.CreateListing(mockCtx, alice, id, "100")
	s.Require().NoError(err)
	s.Equal(domain.ListingId(1), l.Id)
	s.Equal("100", l.Price)
	s.True(l.Active)
	s.listing.AssertExpectations(s.T())
	s.event.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestCreateListingEventInsertFailure() {
	id := s.mockNft()

	// the listing insert and its notification share a transaction, a failed
	// event insert fails the whole operation
	s.authority.On("OwnerOf", mock.Anything, id).Return(alice, nil).Once()
	s.authority.On("IsApproved", mock.Anything, id, alice, marketAddr).Return(true, nil).Once()
	s.listing.On("NextId", mock.Anything).Return(domain.ListingId(1), nil).Once()
	s.listing.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	_, err := s.im.CreateListing(mockCtx, alice, id, "100")
	s.Error(err)
}

func (s *listingUseCaseSuite) TestCreateListingNotOwner() {
	id := s.mockNft()

	s.authority.On("OwnerOf", mock.Anything, id).Return(bob, nil).Once()

	_, err := s.im.CreateListing(mockCtx, alice, id, "100")
	s.Equal(domain.ErrNotOwner, err)
	s.listing.AssertNotCalled(s.T(), "NextId", mock.Anything)
}

func (s *listingUseCaseSuite) TestCreateListingNotApproved() {
	id := s.mockNft()

	s.authority.On("OwnerOf", mock.Anything, id).Return(alice, nil).Once()
	s.authority.On("IsApproved", mock.Anything, id, alice, marketAddr).Return(false, nil).Once()

	_, err := s.im.CreateListing(mockCtx, alice, id, "100")
	s.Equal(domain.ErrNotApproved, err)
	s.listing.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestCreateListingInvalidPrice() {
	id := s.mockNft()

	_, err := s.im.CreateListing(mockCtx, alice, id, "0")
	s.Equal(domain.ErrInvalidPrice, err)

	_, err = s.im.CreateListing(mockCtx, alice, id, "not-a-number")
	s.Equal(domain.ErrInvalidPrice, err)

	_, err = s.im.CreateListing(mockCtx, alice, id, "-5")
	s.Equal(domain.ErrInvalidPrice, err)
	s.authority.AssertNotCalled(s.T(), "OwnerOf", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestUpdateListingPrice() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.listing.On("Patch", mock.Anything, l.Id, mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Price != nil && *p.Price == "250"
	})).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.MatchedBy(func(ev *event.MarketplaceEvent) bool {
		return ev.Type == event.TypeListingUpdated && ev.Price == "250"
	})).Return(nil).Once()

	got, err := s.im.UpdateListingPrice(mockCtx, alice, l.Id, "250")
	s.Require().NoError(err)
	s.Equal("250", got.Price)
	s.listing.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestUpdateListingPriceNotSeller() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()

	_, err := s.im.UpdateListingPrice(mockCtx, bob, l.Id, "250")
	s.Equal(domain.ErrNotSeller, err)
	s.listing.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestUpdateListingPriceNotActive() {
	l := s.mockListing()
	l.Active = false

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()

	_, err := s.im.UpdateListingPrice(mockCtx, alice, l.Id, "250")
	s.Equal(domain.ErrNotActive, err)
}

func (s *listingUseCaseSuite) TestRemoveListing() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.MatchedBy(func(ev *event.MarketplaceEvent) bool {
		return ev.Type == event.TypeListingRemoved && ev.ListingId == l.Id
	})).Return(nil).Once()

	s.Require().NoError(s.im.RemoveListing(mockCtx, alice, l.Id))
	s.listing.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestRemoveListingEventInsertFailure() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	s.Error(s.im.RemoveListing(mockCtx, alice, l.Id))
}

func (s *listingUseCaseSuite) TestRemoveListingNotSeller() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()

	s.Equal(domain.ErrNotSeller, s.im.RemoveListing(mockCtx, bob, l.Id))
	s.listing.AssertNotCalled(s.T(), "Deactivate", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestBuyListing() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.authority.On("Transfer", mock.Anything, l.Nft, marketAddr, alice, bob).Return(nil).Once()
	s.payment.On("Send", mock.Anything, bob, feeOwner, big.NewInt(5)).Return(nil).Once()
	s.payment.On("Send", mock.Anything, bob, alice, big.NewInt(95)).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.MatchedBy(func(ev *event.MarketplaceEvent) bool {
		return ev.Type == event.TypeSold && ev.Buyer == bob
	})).Return(nil).Once()

	sale, err := s.im.BuyListing(mockCtx, bob, l.Id, "100")
	s.Require().NoError(err)
	s.Equal("100", sale.Price)
	s.Equal("5", sale.FeeAmount)
	s.Equal("95", sale.SellerAmount)
	s.Equal(bob, sale.Buyer)
	s.payment.AssertExpectations(s.T())
	s.event.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestBuyListingExcessPaymentChargesPriceOnly() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.authority.On("Transfer", mock.Anything, l.Nft, marketAddr, alice, bob).Return(nil).Once()
	s.payment.On("Send", mock.Anything, bob, feeOwner, big.NewInt(5)).Return(nil).Once()
	s.payment.On("Send", mock.Anything, bob, alice, big.NewInt(95)).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	sale, err := s.im.BuyListing(mockCtx, bob, l.Id, "150")
	s.Require().NoError(err)
	s.Equal("100", sale.Price)
	s.payment.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestBuyListingInsufficientPayment() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()

	_, err := s.im.BuyListing(mockCtx, bob, l.Id, "99")
	s.Equal(domain.ErrInsufficientPayment, err)
	s.listing.AssertNotCalled(s.T(), "Deactivate", mock.Anything, mock.Anything)
	s.payment.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestBuyListingNotActive() {
	l := s.mockListing()
	l.Active = false

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()

	_, err := s.im.BuyListing(mockCtx, bob, l.Id, "100")
	s.Equal(domain.ErrNotActive, err)
}

func (s *listingUseCaseSuite) TestBuyListingLosesDeactivateRace() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(domain.ErrNotActive).Once()

	_, err := s.im.BuyListing(mockCtx, bob, l.Id, "100")
	s.Equal(domain.ErrNotActive, err)
	s.authority.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.payment.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestBuyListingTransferFailureAbortsSettlement() {
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.authority.On("Transfer", mock.Anything, l.Nft, marketAddr, alice, bob).Return(domain.ErrNotOwner).Once()

	_, err := s.im.BuyListing(mockCtx, bob, l.Id, "100")
	s.Equal(domain.ErrNotOwner, err)
	s.payment.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.event.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestBuyListingRevokedApprovalAbortsSettlement() {
	l := s.mockListing()

	// the seller re-approved another operator after listing, the sale must
	// fail at the transfer step and leave the listing active
	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.authority.On("Transfer", mock.Anything, l.Nft, marketAddr, alice, bob).Return(domain.ErrNotApproved).Once()

	_, err := s.im.BuyListing(mockCtx, bob, l.Id, "100")
	s.Equal(domain.ErrNotApproved, err)
	s.payment.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.event.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestBuyListingBySeller() {
	l := s.mockListing()

	// a seller buying back its own listing is a regular sale, the net cost
	// is the marketplace fee
	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.listing.On("Deactivate", mock.Anything, l.Id).Return(nil).Once()
	s.authority.On("Transfer", mock.Anything, l.Nft, marketAddr, alice, alice).Return(nil).Once()
	s.payment.On("Send", mock.Anything, alice, feeOwner, big.NewInt(5)).Return(nil).Once()
	s.payment.On("Send", mock.Anything, alice, alice, big.NewInt(95)).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	sale, err := s.im.BuyListing(mockCtx, alice, l.Id, "100")
	s.Require().NoError(err)
	s.Equal(alice, sale.Buyer)
	s.payment.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestSetFeePercentage() {
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()
	s.config.On("SetFeePercentage", mock.Anything, int32(10)).Return(nil).Once()
	s.event.On("Insert", mock.Anything, mock.MatchedBy(func(ev *event.MarketplaceEvent) bool {
		return ev.Type == event.TypeFeeUpdated && ev.FeePercentage == 10
	})).Return(nil).Once()

	s.Require().NoError(s.im.SetFeePercentage(mockCtx, feeOwner, 10))
	s.config.AssertExpectations(s.T())
}

func (s *listingUseCaseSuite) TestSetFeePercentageUnauthorized() {
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Once()

	s.Equal(domain.ErrUnauthorized, s.im.SetFeePercentage(mockCtx, alice, 10))
	s.config.AssertNotCalled(s.T(), "SetFeePercentage", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestSetFeePercentageInvalid() {
	s.config.On("Get", mock.Anything).Return(&marketplace.Config{Owner: feeOwner, FeePercentage: 5}, nil).Twice()

	s.Equal(domain.ErrInvalidFee, s.im.SetFeePercentage(mockCtx, feeOwner, 101))
	s.Equal(domain.ErrInvalidFee, s.im.SetFeePercentage(mockCtx, feeOwner, -1))
	s.config.AssertNotCalled(s.T(), "SetFeePercentage", mock.Anything, mock.Anything)
}

func (s *listingUseCaseSuite) TestGetTotalListings() {
	s.listing.On("TotalAllocated", mock.Anything).Return(uint64(7), nil).Once()

	total, err := s.im.GetTotalListings(mockCtx)
	s.Require().NoError(err)
	s.Equal(uint64(7), total)
}

func (s *listingUseCaseSuite) TestGetSellerListings() {
	ls := []*listing.Listing{s.mockListing()}
	s.listing.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return(ls, nil).Once()

	got, err := s.im.GetSellerListings(mockCtx, alice)
	s.Require().NoError(err)
	s.Equal(ls, got)
}

func (s *listingUseCaseSuite) TestGetListingCached() {
	im := New(&ListingUseCaseCfg{
		ListingRepo:        s.listing,
		EventRepo:          s.event,
		ConfigRepo:         s.config,
		Authority:          s.authority,
		Payment:            s.payment,
		TxRunner:           passthroughTx{},
		MarketplaceAddress: marketAddr,
		CacheProvider:      primitive.NewPrimitive("test", 1),
	})
	l := s.mockListing()

	s.listing.On("FindOne", mock.Anything, l.Id).Return(l, nil).Once()

	got, err := im.GetListing(mockCtx, l.Id)
	s.Require().NoError(err)
	s.Equal(l.Id, got.Id)

	// second read is served from cache
	got, err = im.GetListing(mockCtx, l.Id)
	s.Require().NoError(err)
	s.Equal(l.Price, got.Price)
	s.listing.AssertNumberOfCalls(s.T(), "FindOne", 1)
}

func (s *listingUseCaseSuite) TestOnNftReceived() {
	ack, err := s.im.OnNftReceived(mockCtx, marketAddr, alice, s.mockNft())
	s.Require().NoError(err)
	s.Equal(listing.NftReceivedAck, ack)
}

func (s *listingUseCaseSuite) TestFeeOf() {
	s.Equal("0", feeOf(big.NewInt(1), 5).String())
	s.Equal("4", feeOf(big.NewInt(99), 5).String())
	s.Equal("100", feeOf(big.NewInt(100), 100).String())
	s.Equal("0", feeOf(big.NewInt(100), 0).String())
}
