package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name        string
		txStatus    string
		fraudStatus string
		want        Status
		reason      ErrorReason
	}{
		{"settlement succeeds", "settlement", "", StatusSucceeded, ""},
		{"capture accepted succeeds", "capture", "accept", StatusSucceeded, ""},
		{"capture under review needs action", "capture", "challenge", StatusRequiresAction, ""},
		{"pending needs action", "pending", "", StatusRequiresAction, ""},
		{"authorize needs action", "authorize", "", StatusRequiresAction, ""},
		{"deny is a card error", "deny", "", StatusFailed, ReasonCardError},
		{"expire is a card error", "expire", "", StatusFailed, ReasonCardError},
		{"cancel is a card error", "cancel", "", StatusFailed, ReasonCardError},
		{"unknown status is an api error", "weird", "", StatusFailed, ReasonAPIError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.txStatus, tc.fraudStatus, "tx-1")
			assert.Equal(t, tc.want, got.Status)
			assert.Equal(t, tc.reason, got.Reason)
			assert.Equal(t, "tx-1", got.TransactionID)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	g := &Gateway{serverKey: "server-key"}

	raw := "CHK-1" + "200" + "98.00" + "server-key"
	sum := sha512.Sum512([]byte(raw))
	sig := hex.EncodeToString(sum[:])

	assert.True(t, g.VerifySignature("CHK-1", "200", "98.00", sig))
	assert.False(t, g.VerifySignature("CHK-1", "200", "98.00", "bogus"))
	assert.False(t, g.VerifySignature("CHK-2", "200", "98.00", sig))
}
