// Package kernel provides shared value objects of the order desk domain:
//   - UUID: internal identity of orders and sessions
//   - Phone: a customer phone number normalized to +996XXXXXXXXX
//
// Values are immutable and validated on construction; zero values fail Validate.
package kernel
