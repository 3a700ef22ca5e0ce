// Package location defines rooms and their device membership.
package location
