package tokenpkg

import (
	"testing"
	"time"

	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestJWTMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewJWTMaker(secretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker(%v) returned error: %v", secretKey, err)
	}

	userID := randompkg.UserID()
	duration := time.Minute

	token, payload, err := maker.CreateToken(userID, RoleAdmin, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, %v, %v) returned error: %v", userID, RoleAdmin, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != nil {
		t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
	}

	want := &Payload{
		UserID:    userID,
		Role:      RoleAdmin,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	ignore := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Minute)

	if diff := cmp.Diff(payload, want, ignore, delta); diff != "" {
		t.Errorf("maker.CreateToken(%v, %v, %v) returned unexpected diff: %v", userID, RoleAdmin, duration, diff)
	}
}

func TestExpiredJWTToken(t *testing.T) {
	t.Parallel()

	maker, err := NewJWTMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	token, _, err := maker.CreateToken(randompkg.UserID(), RoleUser, -time.Minute)
	if err != nil {
		t.Errorf("maker.CreateToken returned error: %v", err)
	}

	if _, err = maker.VerifyToken(token); err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(%v) returned error: %v, want: %v", token, err, ErrExpiredToken)
	}
}

func TestInvalidJWTTokenAlgNone(t *testing.T) {
	t.Parallel()

	payload, err := NewPayload(randompkg.UserID(), RoleUser, time.Minute)
	if err != nil {
		t.Fatalf("NewPayload returned error: %v", err)
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodNone, payload)

	token, err := jwtToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("jwtToken.SignedString returned error: %v", err)
	}

	maker, err := NewJWTMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	if _, err = maker.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("maker.VerifyToken(%v) returned error: %v, want: %v", token, err, ErrInvalidToken)
	}
}
