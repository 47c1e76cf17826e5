package service

import (
	"sort"

	"github.com/bwmarrin/snowflake"

	pricingdomain "github.com/lugspot/lugspot/internal/pricing/domain"
)

// resolveRule selects exactly one rule from the candidate set. Buckets are
// evaluated in strict specificity order (storage > location > tenant >
// global); the first non-empty bucket wins. Within a bucket, ties break on
// priority descending, then created_at descending.
func resolveRule(
	candidates []pricingdomain.PricingRule,
	tenantID snowflake.ID,
	locationID, storageUnitID *snowflake.ID,
) (*pricingdomain.PricingRule, error) {
	var storage, location, tenant, global []pricingdomain.PricingRule

	for _, rule := range candidates {
		switch rule.Scope {
		case pricingdomain.ScopeStorage:
			if ownedBy(rule, tenantID) && refMatches(rule.StorageUnitID, storageUnitID) {
				storage = append(storage, rule)
			}
		case pricingdomain.ScopeLocation:
			if ownedBy(rule, tenantID) && refMatches(rule.LocationID, locationID) {
				location = append(location, rule)
			}
		case pricingdomain.ScopeTenant:
			if ownedBy(rule, tenantID) {
				tenant = append(tenant, rule)
			}
		case pricingdomain.ScopeGlobal:
			if rule.TenantID == nil {
				global = append(global, rule)
			}
		}
	}

	for _, bucket := range [][]pricingdomain.PricingRule{storage, location, tenant, global} {
		if len(bucket) > 0 {
			return pickBest(bucket), nil
		}
	}
	return nil, pricingdomain.ErrNoPricingRule
}

func ownedBy(rule pricingdomain.PricingRule, tenantID snowflake.ID) bool {
	return rule.TenantID != nil && *rule.TenantID == tenantID
}

func refMatches(ruleRef, requestRef *snowflake.ID) bool {
	return ruleRef != nil && requestRef != nil && *ruleRef == *requestRef
}

func pickBest(bucket []pricingdomain.PricingRule) *pricingdomain.PricingRule {
	sort.SliceStable(bucket, func(i, j int) bool {
		if bucket[i].Priority != bucket[j].Priority {
			return bucket[i].Priority > bucket[j].Priority
		}
		return bucket[i].CreatedAt.After(bucket[j].CreatedAt)
	})
	return &bucket[0]
}
