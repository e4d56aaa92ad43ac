/*
Package utils provides the decorators every custody application stacks in
front of its router: panic recovery, logging, atomic savepoints and action
tagging.
*/
package utils
