package passwordresetter

import (
	"authd/internal/core/domain/user"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	emails []user.Email
}

func (suite *testSuite) SetupTest() {
	suite.emails = []user.Email{
		"test-1@test.test",
		"with-many-dashes@ex-ample.test",
		"UPPER.case+tag@test.test",
	}
}

func TestHMACPasswordResetter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccessCases() {
	cases := []struct {
		ID               string
		SecretKeyToGen   string
		SecretKeyToCheck string
		GenTime          string
		CheckTime        string
		ValidDuration    time.Duration
	}{
		{
			ID:               "1",
			SecretKeyToGen:   "",
			SecretKeyToCheck: "",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-01T15:29:59Z",
			ValidDuration:    time.Minute * 30,
		},
		{
			ID:               "2",
			SecretKeyToGen:   "test",
			SecretKeyToCheck: "test",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-01T15:59:59Z",
			ValidDuration:    time.Hour,
		},
		{
			ID:               "3",
			SecretKeyToGen:   "test-test-test",
			SecretKeyToCheck: "test-test-test",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-11T14:59:59Z",
			ValidDuration:    time.Hour * 240,
		},
	}

	for _, email := range s.emails {
		for _, testCase := range cases {
			s.Run(fmt.Sprintf("%s-%s", email, testCase.ID), func() {
				genTime, err := time.Parse(time.RFC3339, testCase.GenTime)
				if err != nil {
					s.FailNow("GenTime is invalid")
				}
				checkTime, err := time.Parse(time.RFC3339, testCase.CheckTime)
				if err != nil {
					s.FailNow("CheckTime is invalid")
				}

				generator := NewHMAC(
					testCase.SecretKeyToGen,
					testCase.ValidDuration,
					func() time.Time { return genTime },
				)
				token := generator.GenerateToken(email)

				validator := NewHMAC(
					testCase.SecretKeyToCheck,
					testCase.ValidDuration,
					func() time.Time { return checkTime },
				)
				subject, ok := validator.ValidateToken(token)
				if !ok {
					s.FailNow("token validation failed", token)
				}
				s.Equal(email, subject)
			})
		}
	}
}

func (s *testSuite) TestFailCases() {
	cases := []struct {
		ID               string
		SecretKeyToGen   string
		SecretKeyToCheck string
		GenTime          string
		CheckTime        string
		ValidDuration    time.Duration
	}{
		{
			ID:               "1",
			SecretKeyToGen:   "",
			SecretKeyToCheck: " ",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-01T15:29:59Z",
			ValidDuration:    time.Minute * 30,
		},
		{
			ID:               "2",
			SecretKeyToGen:   "test",
			SecretKeyToCheck: " test",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-01T15:59:59Z",
			ValidDuration:    time.Hour,
		},
		{
			ID:               "3",
			SecretKeyToGen:   "a",
			SecretKeyToCheck: "a",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-01T15:30:01Z",
			ValidDuration:    time.Minute * 30,
		},
		{
			ID:               "4",
			SecretKeyToGen:   "test",
			SecretKeyToCheck: "test",
			GenTime:          "2020-01-01T15:00:00Z",
			CheckTime:        "2020-01-01T16:01:30Z",
			ValidDuration:    time.Hour,
		},
	}

	for _, email := range s.emails {
		for _, testCase := range cases {
			s.Run(fmt.Sprintf("%s-%s", email, testCase.ID), func() {
				genTime, err := time.Parse(time.RFC3339, testCase.GenTime)
				if err != nil {
					s.FailNow("GenTime is invalid")
				}
				checkTime, err := time.Parse(time.RFC3339, testCase.CheckTime)
				if err != nil {
					s.FailNow("CheckTime is invalid")
				}

				generator := NewHMAC(
					testCase.SecretKeyToGen,
					testCase.ValidDuration,
					func() time.Time { return genTime },
				)
				token := generator.GenerateToken(email)

				validator := NewHMAC(
					testCase.SecretKeyToCheck,
					testCase.ValidDuration,
					func() time.Time { return checkTime },
				)
				if _, ok := validator.ValidateToken(token); ok {
					s.FailNow("token validation succeeded", token)
				}
			})
		}
	}
}

func (s *testSuite) TestMalformedTokens() {
	resetter := NewHMAC(
		"test-secret-key",
		time.Minute*30,
		func() time.Time { return NOW },
	)
	cases := []string{
		"",
		"not base64 at all!!!",
		base64.RawURLEncoding.EncodeToString([]byte("no-parts")),
		base64.RawURLEncoding.EncodeToString([]byte("abc-salt0-mac-test@test.test")),
	}
	for ix, token := range cases {
		s.Run(fmt.Sprint(ix), func() {
			_, ok := resetter.ValidateToken(user.PasswordResetToken(token))
			s.False(ok)
		})
	}
}

func (s *testSuite) TestFailIfTimestampModified() {
	s.False(validatesAfterTampering(func(parts []string) {
		parts[0] = fmt.Sprintf("%d", NOW.Add(time.Minute).Unix())
	}))
}

func (s *testSuite) TestFailIfSaltModified() {
	s.False(validatesAfterTampering(func(parts []string) {
		parts[1] = " " + parts[1][1:]
	}))
}

func (s *testSuite) TestFailIfMacModified() {
	s.False(validatesAfterTampering(func(parts []string) {
		parts[2] = strings.Repeat("0", len(parts[2]))
	}))
}

func (s *testSuite) TestFailIfEmailModified() {
	s.False(validatesAfterTampering(func(parts []string) {
		parts[3] = "other@test.test"
	}))
}

func validatesAfterTampering(tamper func(parts []string)) bool {
	resetter := NewHMAC(
		"test-secret-key",
		time.Minute*30,
		func() time.Time { return NOW },
	)
	decoded, err := base64.RawURLEncoding.DecodeString(string(resetter.GenerateToken("test@test.test")))
	if err != nil {
		panic(err)
	}

	parts := strings.SplitN(string(decoded), "-", 4)
	tamper(parts)
	tampered := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, "-")))

	_, ok := resetter.ValidateToken(user.PasswordResetToken(tampered))
	return ok
}

func (s *testSuite) TestTokensForSameEmailDiffer() {
	resetter := NewHMAC(
		"test-secret-key",
		time.Minute*30,
		func() time.Time { return NOW },
	)
	token1 := resetter.GenerateToken("test@test.test")
	token2 := resetter.GenerateToken("test@test.test")
	s.NotEqual(token1, token2)
}

func (s *testSuite) TestExpiredTokenScenario() {
	mintedAt := NOW
	resetter := NewHMAC("test-secret-key", time.Minute*30, func() time.Time { return mintedAt })
	token := resetter.GenerateToken("a@example.com")

	checker := NewHMAC(
		"test-secret-key",
		time.Minute*30,
		func() time.Time { return mintedAt.Add(time.Minute*30 + time.Second) },
	)
	_, ok := checker.ValidateToken(token)
	s.False(ok)
}
