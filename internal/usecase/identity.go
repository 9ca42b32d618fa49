package usecase

import "claimtrust/internal/domain"

// Identity sub-scorer weights.
const (
	identityVerifiedHumanBonus = 40
	identityBaselineNoHuman    = 10
	identityGovernmentIDBonus  = 30
	identityAgeVerifiedBonus   = 15
	identityLocationBonus      = 15
	identityNoCredentialsScore = 20
)

func scoreIdentity(req domain.ClaimRequest) subScore {
	var codes []domain.ReasonCode
	var flags []string

	score := 0
	if req.HasCredential(domain.CredentialVerifiedHuman) {
		score += identityVerifiedHumanBonus
	} else {
		score += identityBaselineNoHuman
		codes = append(codes, domain.ReasonIdentityMissingVerifiedHuman)
		flags = append(flags, "claimant holds no verified-human credential")
	}
	if req.HasCredential(domain.CredentialGovernmentID) {
		score += identityGovernmentIDBonus
	}
	if req.HasCredential(domain.CredentialAgeVerification) {
		score += identityAgeVerifiedBonus
	}
	if req.HasCredential(domain.CredentialLocation) {
		score += identityLocationBonus
	}
	if score > 100 {
		score = 100
	}

	// A wallet with no credentials at all outranks the additive total:
	// the claimant is effectively anonymous.
	if len(req.UserCredentials) == 0 {
		score = identityNoCredentialsScore
		codes = append(codes, domain.ReasonIdentityNoCredentials)
		flags = append(flags, "no credentials provided with claim")
	}

	signal := domain.NewRiskSignal(
		domain.SignalIdentityCredentials,
		1-float64(score)/100,
		domain.SignalSourceRules,
		codes,
		map[string]any{"credential_count": len(req.UserCredentials)},
	)

	return subScore{
		score:   score,
		codes:   codes,
		signals: []domain.RiskSignal{signal},
		flags:   flags,
	}
}
