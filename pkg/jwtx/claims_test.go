package jwtx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestClaimSetPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	cs := NewClaimSet().
		Add(ClaimSubject, "alice").
		Add(ClaimTokenID, "id-1").
		Add(ClaimGivenName, "Alice").
		Add(ClaimFamilyName, "Smith").
		Add(ClaimEmail, "alice@x.com")

	data, err := json.Marshal(cs)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"sub":"alice","jti":"id-1","given_name":"Alice","family_name":"Smith","email":"alice@x.com"}`,
		string(data),
	)
	// JSONEq ignores ordering; check the raw byte layout too.
	require.Equal(t,
		`{"sub":"alice","jti":"id-1","given_name":"Alice","family_name":"Smith","email":"alice@x.com"}`,
		string(data),
	)
}

func TestClaimSetKeepsDuplicates(t *testing.T) {
	t.Parallel()

	cs := NewClaimSet().
		Add("email", "fixed@x.com").
		Add("email", "custom@x.com")

	require.Equal(t, 2, cs.Len())

	data, err := json.Marshal(cs)
	require.NoError(t, err)
	require.Equal(t, `{"email":"fixed@x.com","email":"custom@x.com"}`, string(data))

	// Lookups follow JSON semantics: last occurrence wins.
	v, ok := cs.GetString("email")
	require.True(t, ok)
	require.Equal(t, "custom@x.com", v)
}

func TestClaimSetUnmarshalPreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	in := `{"sub":"bob","role":"admin","role":"editor","n":42}`

	cs := NewClaimSet()
	require.NoError(t, json.Unmarshal([]byte(in), cs))

	claims := cs.Claims()
	require.Len(t, claims, 4)
	require.Equal(t, "sub", claims[0].Type)
	require.Equal(t, "role", claims[1].Type)
	require.Equal(t, "admin", claims[1].Value)
	require.Equal(t, "role", claims[2].Type)
	require.Equal(t, "editor", claims[2].Value)
	require.Equal(t, "n", claims[3].Type)
}

func TestClaimSetUnmarshalRejectsNonObject(t *testing.T) {
	t.Parallel()

	cs := NewClaimSet()
	require.ErrorIs(t, json.Unmarshal([]byte(`[1,2]`), cs), ErrMalformed)
	require.ErrorIs(t, json.Unmarshal([]byte(`"str"`), cs), ErrMalformed)
}

func TestClaimSetRegisteredGetters(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	exp := now.Add(15 * time.Minute)

	cs := NewClaimSet().
		Add(ClaimSubject, "alice").
		Add(ClaimIssuer, "codecamp").
		Add(ClaimAudience, "codecamp-clients").
		Add(ClaimExpiresAt, jwt.NewNumericDate(exp)).
		Add(ClaimIssuedAt, jwt.NewNumericDate(now))

	sub, err := cs.GetSubject()
	require.NoError(t, err)
	require.Equal(t, "alice", sub)

	iss, err := cs.GetIssuer()
	require.NoError(t, err)
	require.Equal(t, "codecamp", iss)

	aud, err := cs.GetAudience()
	require.NoError(t, err)
	require.Equal(t, jwt.ClaimStrings{"codecamp-clients"}, aud)

	expiry, err := cs.GetExpirationTime()
	require.NoError(t, err)
	require.True(t, expiry.Time.Equal(exp))

	issued, err := cs.GetIssuedAt()
	require.NoError(t, err)
	require.True(t, issued.Time.Equal(now))

	nbf, err := cs.GetNotBefore()
	require.NoError(t, err)
	require.Nil(t, nbf)
}

func TestClaimSetGettersAfterRoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	src := NewClaimSet().
		Add(ClaimSubject, "carol").
		Add(ClaimExpiresAt, jwt.NewNumericDate(exp))

	data, err := json.Marshal(src)
	require.NoError(t, err)

	parsed := NewClaimSet()
	require.NoError(t, json.Unmarshal(data, parsed))

	// After decoding, timestamps arrive as json.Number and must still convert.
	got, err := parsed.GetExpirationTime()
	require.NoError(t, err)
	require.WithinDuration(t, exp, got.Time, time.Second)
}

func TestClaimSetCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := NewClaimSet().Add(ClaimSubject, "dave")
	clone := orig.Clone()
	clone.Add("extra", true)

	require.Equal(t, 1, orig.Len())
	require.Equal(t, 2, clone.Len())
}
