// Package layout places struct members and array windows inside the
// declared size of their parent, rejecting bit-fields and members that
// overrun it.
package layout
