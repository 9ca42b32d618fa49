package domain

import "testing"

func TestRecommendationForScore_Boundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Recommendation
	}{
		{100, RecommendationApprove},
		{90, RecommendationApprove},
		{89, RecommendationReview},
		{70, RecommendationReview},
		{69, RecommendationInvestigate},
		{50, RecommendationInvestigate},
		{49, RecommendationReject},
		{0, RecommendationReject},
	}
	for _, tc := range cases {
		if got := RecommendationForScore(tc.score); got != tc.want {
			t.Fatalf("RecommendationForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestRecommendationForScore_Monotonic(t *testing.T) {
	rank := map[Recommendation]int{
		RecommendationReject:      0,
		RecommendationInvestigate: 1,
		RecommendationReview:      2,
		RecommendationApprove:     3,
	}
	prev := RecommendationForScore(0)
	for score := 1; score <= 100; score++ {
		curr := RecommendationForScore(score)
		if rank[curr] < rank[prev] {
			t.Fatalf("recommendation regressed at score %d: %s -> %s", score, prev, curr)
		}
		prev = curr
	}
}

func TestReviewStatusValid(t *testing.T) {
	for _, s := range []ReviewStatus{ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected, ReviewStatusNeedsReview} {
		if !s.Valid() {
			t.Fatalf("expected %s valid", s)
		}
	}
	if ReviewStatus("archived").Valid() {
		t.Fatalf("expected archived invalid")
	}
}

func TestClaimTypeValid(t *testing.T) {
	if !ClaimTypeRefund.Valid() {
		t.Fatalf("expected refund valid")
	}
	if ClaimType("home_insurance").Valid() {
		t.Fatalf("expected unknown claim type invalid")
	}
}
