package usecase_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/domain"
	"github.com/openxmarket/goapi/stores/auth/usecase"
)

const signingMsg = "Welcome to OpenX! Sign this message to login."

func TestSignAndParseToken(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()

	sig, err := crypto.Sign(accounts.TextHash([]byte(signingMsg)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signingMsg)
	tkn, err := u.SignToken(ctx, address, hexutil.Encode(sig))
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, address.ToLowerStr(), ads)
}

func TestSignTokenRejectsWrongSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash([]byte(signingMsg)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signingMsg)
	_, err = u.SignToken(ctx, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", hexutil.Encode(sig))
	assert.Equal(t, domain.ErrUnauthorized, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	u := usecase.New("jwt-secret", signingMsg)
	_, err := u.ParseToken(ctx.Background(), "not-a-token")
	assert.Error(t, err)
}
