package grammar

import "github.com/ghettovoice/abnf"

// RFC 3986 Appendix A rules used by the validators.
// Only rules with a bounded or structural shape live here,
// plain char runs (path, query, fragment) are checked by the char class tables in escape.go.

func lit(s string) abnf.Operator { return abnf.Literal(`"`+s+`"`, []byte(s)) }

var (
	ruleALPHA = abnf.AltFirst(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	ruleDIGIT  = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	ruleHEXDIG = abnf.AltFirst(
		"HEXDIG",
		ruleDIGIT,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	ruleUnreserved = abnf.AltFirst(
		"unreserved",
		ruleALPHA,
		ruleDIGIT,
		lit("-"), lit("."), lit("_"), lit("~"),
	)
	ruleSubDelims = abnf.AltFirst(
		"sub-delims",
		lit("!"), lit("$"), lit("&"), lit("'"), lit("("), lit(")"),
		lit("*"), lit("+"), lit(","), lit(";"), lit("="),
	)
	rulePctEncoded = abnf.Concat("pct-encoded", lit("%"), ruleHEXDIG, ruleHEXDIG)

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
	ruleScheme = abnf.Concat(
		"scheme",
		ruleALPHA,
		abnf.Repeat0Inf(
			`*( ALPHA / DIGIT / "+" / "-" / "." )`,
			abnf.AltFirst(`ALPHA / DIGIT / "+" / "-" / "."`, ruleALPHA, ruleDIGIT, lit("+"), lit("-"), lit(".")),
		),
	)

	// dec-octet alternatives are ordered from the longest to the shortest match.
	ruleDecOctet = abnf.AltFirst(
		"dec-octet",
		abnf.Concat(`"25" %x30-35`, lit("25"), abnf.Range("%x30-35", []byte{0x30}, []byte{0x35})),
		abnf.Concat(`"2" %x30-34 DIGIT`, lit("2"), abnf.Range("%x30-34", []byte{0x30}, []byte{0x34}), ruleDIGIT),
		abnf.Concat(`"1" 2DIGIT`, lit("1"), ruleDIGIT, ruleDIGIT),
		abnf.Concat("%x31-39 DIGIT", abnf.Range("%x31-39", []byte{0x31}, []byte{0x39}), ruleDIGIT),
		ruleDIGIT,
	)
	ruleIPv4address = abnf.Concat(
		"IPv4address",
		ruleDecOctet, lit("."), ruleDecOctet, lit("."), ruleDecOctet, lit("."), ruleDecOctet,
	)

	// IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )
	ruleIPvFuture = abnf.Concat(
		"IPvFuture",
		lit("v"),
		abnf.Repeat1Inf("1*HEXDIG", ruleHEXDIG),
		lit("."),
		abnf.Repeat1Inf(
			`1*( unreserved / sub-delims / ":" )`,
			abnf.AltFirst(`unreserved / sub-delims / ":"`, ruleUnreserved, ruleSubDelims, lit(":")),
		),
	)

	// reg-name = *( unreserved / pct-encoded / sub-delims )
	ruleRegName = abnf.Repeat0Inf(
		"reg-name",
		abnf.AltFirst("unreserved / pct-encoded / sub-delims", ruleUnreserved, rulePctEncoded, ruleSubDelims),
	)

	// port = *DIGIT
	rulePort = abnf.Repeat0Inf("port", ruleDIGIT)
)
