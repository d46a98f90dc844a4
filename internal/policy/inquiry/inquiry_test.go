package inquiry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dirmodels "esbresolver/internal/directory/models"
	"esbresolver/internal/policy/inquiry"
	"esbresolver/internal/policy/inquiry/mocks"
	dErrors "esbresolver/pkg/domain-errors"
	tu "esbresolver/pkg/testutil"
)

type InquirySuite struct {
	suite.Suite
	resolver *mocks.MockResolver
	fact     *inquiry.Fact
}

func TestInquirySuite(t *testing.T) {
	suite.Run(t, new(InquirySuite))
}

func (s *InquirySuite) SetupTest() {
	s.resolver = mocks.NewMockResolver(gomock.NewController(s.T()))
	s.fact = inquiry.New(context.Background(), s.resolver, nil).(*inquiry.Fact)
}

func (s *InquirySuite) TestFindAccessPoint() {
	s.Run("service only", func() {
		s.resolver.EXPECT().
			FindAccessPointForService(gomock.Any(), nil, tu.MustName("Orders"), dirmodels.UseTypeEndPoint).
			Return("http://host/orders", nil)

		ap, err := s.fact.FindAccessPoint("", "Orders", "ENDPOINT")
		s.Require().NoError(err)
		s.Equal("http://host/orders", ap)
	})

	s.Run("with provider", func() {
		provider := tu.MustName("Contoso")
		s.resolver.EXPECT().
			FindAccessPointForService(gomock.Any(), &provider, tu.MustName("Orders"), dirmodels.UseTypeWsdlDeployment).
			Return("http://host/orders?wsdl", nil)

		ap, err := s.fact.FindAccessPoint("Contoso", "Orders", "wsdlDeployment")
		s.Require().NoError(err)
		s.Equal("http://host/orders?wsdl", ap)
	})

	s.Run("by key", func() {
		provider := tu.MustKey("biz-1")
		s.resolver.EXPECT().
			FindAccessPointForService(gomock.Any(), &provider, tu.MustKey("svc-1"), dirmodels.UseTypeEndPoint).
			Return("http://host/orders", nil)

		_, err := s.fact.FindAccessPointByKey("biz-1", "svc-1", "endPoint")
		s.Require().NoError(err)
	})
}

func (s *InquirySuite) TestResolveEndpoint() {
	s.resolver.EXPECT().
		ResolveEndpoint(gomock.Any(), nil, tu.MustName("Orders"), dirmodels.UseTypeEndPoint).
		Return("http://gateway/orders", nil)

	ep, err := s.fact.ResolveEndpoint("", "Orders", "endPoint")
	s.Require().NoError(err)
	s.Equal("http://gateway/orders", ep)
}

func (s *InquirySuite) TestInvalidArguments() {
	_, err := s.fact.FindAccessPoint("", "Orders", "carrierPigeon")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.fact.FindAccessPoint("", " ", "endPoint")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *InquirySuite) TestPlaceholderWithoutResolver() {
	fact := inquiry.New(context.Background(), nil, nil)
	s.Equal(inquiry.FactName, fact.FactName())

	placeholder, ok := fact.(inquiry.Placeholder)
	s.Require().True(ok)
	ap, err := placeholder.FindAccessPoint("", "Orders", "endPoint")
	s.NoError(err)
	s.Empty(ap)
}
