package normalize

import (
	"testing"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okResult(id domain.SourceID, records ...domain.RawRecord) domain.SourceResult {
	if records == nil {
		records = []domain.RawRecord{}
	}
	return domain.SourceResult{
		SourceID:  id,
		Status:    domain.SourceStatusOK,
		Payload:   records,
		FetchedAt: time.Now(),
	}
}

func failedResult(id domain.SourceID) domain.SourceResult {
	return domain.SourceResult{
		SourceID:  id,
		Status:    domain.SourceStatusFailed,
		Err:       &domain.SourceError{Kind: domain.ErrorKindUnknown, Detail: "upstream down"},
		FetchedAt: time.Now(),
	}
}

func timeoutResult(id domain.SourceID) domain.SourceResult {
	return domain.SourceResult{
		SourceID:  id,
		Status:    domain.SourceStatusTimeout,
		Err:       &domain.SourceError{Kind: domain.ErrorKindTimeout, Detail: "deadline exceeded"},
		FetchedAt: time.Now(),
	}
}

func bundleWith(results ...domain.SourceResult) domain.RawBundle {
	bundle := domain.RawBundle{
		ClientID: "client-1",
		Results:  make(map[domain.SourceID]domain.SourceResult),
	}
	for _, id := range domain.ConfiguredSources() {
		bundle.Results[id] = failedResult(id)
	}
	for _, res := range results {
		bundle.Results[res.SourceID] = res
	}
	return bundle
}

func profileRecord() domain.RawRecord {
	return domain.RawRecord{
		"clientId": "client-1",
		"personalInfo": map[string]any{
			"fullName":    "Asha Verma",
			"email":       "asha@example.com",
			"dependents":  float64(2),
			"kycVerified": true,
		},
		"financialInfo": map[string]any{
			"totalMonthlyIncome":   float64(50000),
			"totalMonthlyExpenses": "35000", // numeric string, coerced
			"liquidSavings":        float64(210000),
			"currency":             "INR",
		},
		"assets": []any{
			map[string]any{"name": "Apartment", "category": "Real Estate", "value": float64(4500000)},
		},
		"debts": []any{
			map[string]any{"lender": "HDFC", "type": "Home Loan", "outstanding": float64(2000000), "monthlyEmi": float64(18000)},
		},
	}
}

func TestNormalize_ProfileSections(t *testing.T) {
	bundle := bundleWith(okResult(domain.SourceProfile, profileRecord()))
	model := Normalize(bundle)

	require.NotNil(t, model.Identity)
	assert.Equal(t, "Asha Verma", model.Identity.FullName.Value)
	assert.True(t, model.Identity.FullName.IsPresent())
	assert.Equal(t, int64(2), model.Identity.Dependents.Value)
	assert.True(t, model.Identity.KYCVerified.Value)

	// Leaves the record never mentioned are absent, not zero.
	assert.Equal(t, domain.FieldAbsent, model.Identity.Phone.State)
	assert.Equal(t, domain.FieldAbsent, model.Identity.MaritalStatus.State)

	require.NotNil(t, model.Financial)
	assert.True(t, model.Financial.TotalMonthlyIncome.Value.Equal(decimal.NewFromInt(50000)))
	assert.True(t, model.Financial.TotalMonthlyExpenses.IsPresent(), "numeric string should coerce")
	assert.True(t, model.Financial.TotalMonthlyExpenses.Value.Equal(decimal.NewFromInt(35000)))

	require.NotNil(t, model.Assets)
	require.Len(t, model.Assets.Items, 1)
	assert.True(t, model.Assets.Items[0].Value.Value.Equal(decimal.NewFromInt(4500000)))

	require.NotNil(t, model.Debts)
	require.Len(t, model.Debts.Items, 1)
}

func TestNormalize_PresenceDistinction(t *testing.T) {
	// ok + empty payload: present with zero count. failed: absent with reason.
	bundle := bundleWith(
		okResult(domain.SourceProfile, profileRecord()),
		okResult(domain.SourceMeetings),
		failedResult(domain.SourceLegalDocuments),
		timeoutResult(domain.SourceChatHistory),
	)
	model := Normalize(bundle)

	require.NotNil(t, model.Meetings)
	assert.True(t, model.SectionPresent(domain.SectionMeetings))
	assert.Empty(t, model.Meetings.Meetings)
	assert.False(t, model.SectionHasData(domain.SectionMeetings))

	assert.Nil(t, model.LegalDocuments)
	assert.False(t, model.SectionPresent(domain.SectionLegalDocuments))
	assert.Equal(t, ReasonSourceFailed, model.Unavailable[domain.SectionLegalDocuments])

	assert.Nil(t, model.ChatHistory)
	assert.Equal(t, ReasonSourceTimeout, model.Unavailable[domain.SectionChatHistory])
}

func TestNormalize_MalformedLeavesPreserved(t *testing.T) {
	rec := profileRecord()
	rec["financialInfo"].(map[string]any)["totalMonthlyIncome"] = map[string]any{"oops": true}
	rec["personalInfo"].(map[string]any)["kycVerified"] = "maybe"

	bundle := bundleWith(okResult(domain.SourceProfile, rec))
	model := Normalize(bundle)

	income := model.Financial.TotalMonthlyIncome
	assert.Equal(t, domain.FieldMalformed, income.State)
	assert.NotNil(t, income.Raw, "raw value kept for diagnostics")

	assert.Equal(t, domain.FieldMalformed, model.Identity.KYCVerified.State)
	assert.Equal(t, "maybe", model.Identity.KYCVerified.Raw)
}

func TestNormalize_SafeNestedTraversal(t *testing.T) {
	// financialInfo is a string, not an object; traversal must not panic and
	// every leaf under it reads absent.
	rec := domain.RawRecord{
		"clientId":      "client-1",
		"financialInfo": "not-an-object",
	}
	bundle := bundleWith(okResult(domain.SourceProfile, rec))

	var model *domain.ClientReportModel
	require.NotPanics(t, func() { model = Normalize(bundle) })
	assert.Equal(t, domain.FieldAbsent, model.Financial.TotalMonthlyIncome.State)
}

func TestNormalize_SingleRecordSourceWithNoRecords(t *testing.T) {
	bundle := bundleWith(
		okResult(domain.SourceProfile, profileRecord()),
		okResult(domain.SourceEstate), // ok but never collected
	)
	model := Normalize(bundle)

	assert.Nil(t, model.Estate)
	assert.Equal(t, ReasonNotCollected, model.Unavailable[domain.SectionEstate])
}

func TestNormalize_NeverPanicsOnHostilePayloads(t *testing.T) {
	hostile := []domain.RawRecord{
		nil,
		{},
		{"clientId": nil},
		{"clientId": float64(42)},
		{"personalInfo": []any{"not", "a", "map"}},
		{"personalInfo": map[string]any{"dependents": "three and a half"}},
		{"financialInfo": map[string]any{"totalMonthlyIncome": ""}},
		{"financialInfo": map[string]any{"totalMonthlyIncome": "12,000"}},
		{"assets": "none"},
		{"assets": []any{nil, "junk", float64(7)}},
		{"goals": map[string]any{"nested": map[string]any{"deeper": nil}}},
	}

	for _, rec := range hostile {
		bundle := bundleWith(
			okResult(domain.SourceProfile, rec),
			okResult(domain.SourcePlans, rec),
			okResult(domain.SourceMeetings, rec),
			okResult(domain.SourceEstate, rec),
			okResult(domain.SourceTaxPlanning, rec),
		)
		require.NotPanics(t, func() {
			model := Normalize(bundle)
			require.NotNil(t, model)
		})
	}
}

func TestNormalize_TimeCoercion(t *testing.T) {
	bundle := bundleWith(
		okResult(domain.SourceProfile, profileRecord()),
		okResult(domain.SourceMeetings,
			domain.RawRecord{"title": "Quarterly Review", "heldAt": "2025-03-10T14:00:00Z"},
			domain.RawRecord{"title": "Intro Call", "heldAt": "2025-01-05"},
			domain.RawRecord{"title": "Broken", "heldAt": "next tuesday"},
		),
	)
	model := Normalize(bundle)

	require.Len(t, model.Meetings.Meetings, 3)
	assert.True(t, model.Meetings.Meetings[0].HeldAt.IsPresent())
	assert.True(t, model.Meetings.Meetings[1].HeldAt.IsPresent())
	assert.Equal(t, domain.FieldMalformed, model.Meetings.Meetings[2].HeldAt.State)
}

func TestNormalize_ModelCopiesBundleData(t *testing.T) {
	rec := profileRecord()
	bundle := bundleWith(okResult(domain.SourceProfile, rec))
	model := Normalize(bundle)

	// Mutating the raw record after normalization must not leak into the model.
	rec["personalInfo"].(map[string]any)["fullName"] = "Someone Else"
	assert.Equal(t, "Asha Verma", model.Identity.FullName.Value)
}
