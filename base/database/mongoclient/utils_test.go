package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/openxmarket/goapi/base/ptr"
)

type utilsSuite struct {
	suite.Suite
}

func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(utilsSuite))
}

func (s *utilsSuite) TestMakeBsonM() {
	type patchable struct {
		Price     *string `bson:"price,omitempty"`
		Active    *bool   `bson:"active,omitempty"`
		Untouched *string `bson:"untouched,omitempty"`
		Skipped   string  `bson:"-"`
	}

	p := patchable{
		Price:   ptr.String("1000"),
		Active:  ptr.Bool(false),
		Skipped: "ignored",
	}

	m, err := MakeBsonM(&p)
	s.NoError(err)
	s.Equal("1000", m["price"])
	s.Equal(false, m["active"])
	s.NotContains(m, "untouched")
	s.NotContains(m, "-")
	s.NotContains(m, "skipped")
}
