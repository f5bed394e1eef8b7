package usecase

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt"

	"github.com/openxmarket/goapi/base/ctx"
	"github.com/openxmarket/goapi/base/log"
	"github.com/openxmarket/goapi/domain"
)

type impl struct {
	jwtSecret  []byte
	signingMsg string
}

func New(jwtSecret string, signingMsg string) domain.AuthUsecase {
	return &impl{
		jwtSecret:  []byte(jwtSecret),
		signingMsg: signingMsg,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	recovered, err := im.recoverAddress(ctx, signature)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "address": address}).Error("recoverAddress failed")
		return "", domain.ErrUnauthorized
	}

	if !address.Equals(recovered) {
		ctx.WithFields(log.Fields{"address": address, "recovered": recovered}).Warn("signature mismatch")
		return "", domain.ErrUnauthorized
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrUnauthorized
}

// recoverAddress recovers the signer of the personal_sign message
func (im *impl) recoverAddress(ctx ctx.Ctx, signature string) (domain.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return domain.EmptyAddress, err
	}
	if len(sig) != crypto.SignatureLength {
		return domain.EmptyAddress, fmt.Errorf("invalid signature length %d", len(sig))
	}
	// eth_sign uses 27/28 for the recovery id
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pubkey, err := crypto.SigToPub(accounts.TextHash([]byte(im.signingMsg)), sig)
	if err != nil {
		return domain.EmptyAddress, err
	}

	return domain.Address(crypto.PubkeyToAddress(*pubkey).Hex()).ToLower(), nil
}
