package domain

import "strings"

type ContentType string

const (
	ContentTypeAll ContentType = "all"

	Asian   ContentType = "asian"
	Western ContentType = "western"
	Banned  ContentType = "banned"
	Unknown ContentType = "unknown"

	VipAsian   ContentType = "vip-asian"
	VipWestern ContentType = "vip-western"
	VipBanned  ContentType = "vip-banned"
	VipUnknown ContentType = "vip-unknown"
)

const vipPrefix = "vip-"

type Tier string

const (
	TierFree Tier = "free"
	TierVip  Tier = "vip"
)

// ContentTypes lists every source key in registry order.
var ContentTypes = []ContentType{
	Asian, Western, Banned, Unknown,
	VipAsian, VipWestern, VipBanned, VipUnknown,
}

func (c ContentType) IsVip() bool {
	return strings.HasPrefix(string(c), vipPrefix)
}

func (c ContentType) Tier() Tier {
	if c.IsVip() {
		return TierVip
	}
	return TierFree
}

// Region strips the tier prefix: "vip-asian" -> "asian".
func (c ContentType) Region() string {
	return strings.TrimPrefix(string(c), vipPrefix)
}

func ParseContentType(s string) ContentType {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ContentTypeAll
	}
	return ContentType(s)
}
