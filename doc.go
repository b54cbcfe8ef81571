// Package auth implements stateless, cookie-carried JWT authentication for
// a small web application: user registration, credential verification,
// signed-token session issuance, and token-gated pages.
//
// Session state lives entirely in the signed token the client presents on
// each request; the server keeps no session table. Verification of the
// token signature is the sole trust mechanism.
package auth
