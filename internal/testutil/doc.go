// Package testutil provides a scripted fake of the Agent OS backend for
// service package tests. Instead of hand-rolling an httptest handler per
// test, a test registers canned JSON responses per method+path, runs the
// client under test, and asserts on the recorded requests (method, path,
// query, decoded body).
package testutil
