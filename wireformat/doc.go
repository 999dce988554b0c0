// Package wireformat defines the JSON wire formats of the SDK.
//
// The envelope format is the contract every binding agrees on:
//
//	{"success":true,"pokemon":{...},"error":null}
//	{"success":false,"pokemon":null,"error":"pokemon 999999 not found"}
//
// Consumers in three host languages decode these exact key names, so they
// must remain stable. The HTTP wire types carry requests between a wasip1
// guest and its host.
package wireformat
