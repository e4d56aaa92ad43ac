/*
Package x contains the helpers shared by all custody extensions.

Extensions implement a part of the application (Handler, Decorator,
Initializer and queries) and are combined together in the app package.
An extension never reads the signatures of a transaction directly, it
receives an Authenticator that tells which conditions signed it.
*/
package x
