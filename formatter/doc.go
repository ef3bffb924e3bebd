// Package formatter compiles log patterns into render chains.
//
// A pattern is literal text interleaved with conversions:
//
//	%m message        %p level          %r elapsed ms     %c logger name
//	%t thread id      %F fiber id       %N thread name    %d timestamp
//	%f file           %l line           %T tab            %n newline
//	%% literal percent
//
// %d may be followed by a strftime sub-pattern in braces, for example
// %d{%Y-%m-%d %H:%M:%S.%L}. Without braces the sub-pattern defaults to
// %Y-%m-%d %H:%M:%S.
//
// Compilation never fails. An unknown conversion, a dangling % or an
// unterminated brace is replaced by the literal <<pattern_error>> and
// recorded on the Formatter; the rest of the pattern still compiles.
// HasError reports the flag and Err returns the individual failures.
//
// A compiled Formatter is immutable, so one instance may be shared by
// any number of goroutines. Rendering goes through a pooled
// bytes.Buffer; buffers larger than 64 KiB are not returned to the pool
// so that a single huge line does not pin memory.
package formatter
