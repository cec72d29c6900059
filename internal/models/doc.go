// Package models holds the client-side shapes of users, accounts, categories,
// transactions and reports. Backend naming never reaches these types; the api
// package converts at the wire boundary.
package models
