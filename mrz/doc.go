// Package mrz builds the two 44-character lines of a passport machine
// readable zone.
//
// Line 1 carries the document type, issuing country and names:
//
//	P<VEN{surname:20}<<{given:20}
//
// Line 2 carries the document number, country, birth date, sex, expiry and
// three check digits at fixed positions:
//
//	idx  0..8   document number
//	     9      check digit 1
//	     10..12 country
//	     13..18 birth date YYMMDD
//	     19     sex (M or F)
//	     20..25 expiry YYMMDD
//	     26     check digit 2
//	     27..41 filler
//	     42     check digit 3
//
// Both lines are always forced to exactly [LineLength] characters.
//
// Check digits come from a [CheckDigits] strategy. [ICAO] computes the
// 7-3-1 weighted modulo-10 digit; [Random] reproduces legacy documents that
// carried uniformly random digits.
package mrz
