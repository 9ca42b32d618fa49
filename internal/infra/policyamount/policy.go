// Package policyamount evaluates amount-reasonability rules for claims.
// When a Rego bundle is configured it is consulted first; the built-in
// thresholds answer when no bundle exists or evaluation fails, so the
// check is deterministic under every failure mode.
package policyamount

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"claimtrust/internal/domain"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.claimtrust.amount.result"

type Policy struct {
	query    *rego.PreparedEvalQuery
	bundleID string
}

// New prepares the amount policy. An empty bundlePath yields a
// builtin-only policy, which is the common deployment.
func New(ctx context.Context, bundlePath string) (*Policy, error) {
	if bundlePath == "" {
		return &Policy{}, nil
	}
	prepared, err := rego.New(
		rego.Query(defaultQuery),
		rego.StrictBuiltinErrors(true),
		rego.Load([]string{bundlePath}, nil),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Policy{query: &prepared, bundleID: bundlePath}, nil
}

type policyInput struct {
	ClaimType string  `json:"claim_type"`
	Amount    float64 `json:"amount"`
}

type policyResult struct {
	Excessive bool   `json:"excessive"`
	Code      string `json:"code"`
	Penalty   int    `json:"penalty"`
}

// Evaluate returns the ruling for a claim amount and whether any rule
// applied. A nil amount never triggers a ruling.
func (p *Policy) Evaluate(ctx context.Context, claimType domain.ClaimType, amount *float64) (domain.AmountRuling, bool) {
	if amount == nil {
		return domain.AmountRuling{}, false
	}
	if p != nil && p.query != nil {
		if ruling, ok, err := p.evalBundle(ctx, claimType, *amount); err == nil {
			if ok {
				return ruling, true
			}
			return domain.AmountRuling{}, false
		} else {
			log.Printf("amount policy bundle %s failed, using builtin thresholds: %v", p.bundleID, err)
		}
	}
	return builtinRuling(claimType, *amount)
}

func (p *Policy) evalBundle(ctx context.Context, claimType domain.ClaimType, amount float64) (domain.AmountRuling, bool, error) {
	results, err := p.query.Eval(ctx, rego.EvalInput(policyInput{
		ClaimType: string(claimType),
		Amount:    amount,
	}))
	if err != nil {
		return domain.AmountRuling{}, false, err
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.AmountRuling{}, false, errors.New("empty policy result")
	}
	payload, err := json.Marshal(results[0].Expressions[0].Value)
	if err != nil {
		return domain.AmountRuling{}, false, err
	}
	var result policyResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return domain.AmountRuling{}, false, err
	}
	if !result.Excessive {
		return domain.AmountRuling{}, false, nil
	}
	if result.Code == "" || result.Penalty <= 0 {
		return domain.AmountRuling{}, false, errors.New("malformed policy ruling")
	}
	return domain.AmountRuling{
		Code:    domain.ReasonCode(result.Code),
		Penalty: result.Penalty,
		Source:  "policy",
	}, true, nil
}

func builtinRuling(claimType domain.ClaimType, amount float64) (domain.AmountRuling, bool) {
	if amount <= 0 {
		return domain.AmountRuling{
			Code:    domain.ReasonIntegrityAmountInvalid,
			Penalty: 10,
			Source:  "builtin",
		}, true
	}
	switch claimType {
	case domain.ClaimTypeAutoInsurance:
		if amount > domain.AutoInsuranceAmountLimit {
			return domain.AmountRuling{
				Code:    domain.ReasonIntegrityAmountExcessive,
				Penalty: 20,
				Source:  "builtin",
			}, true
		}
	case domain.ClaimTypeRefund:
		if amount > domain.RefundAmountLimit {
			return domain.AmountRuling{
				Code:    domain.ReasonIntegrityRefundExcessive,
				Penalty: 15,
				Source:  "builtin",
			}, true
		}
	}
	// Unrecognized claim types intentionally match no threshold rule
	// here; the API boundary rejects them before scoring.
	return domain.AmountRuling{}, false
}
