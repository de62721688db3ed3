// Package cli implements the command line interface using cobra.
// Commands drive the core exclusively through the driving ports;
// services are injected at startup via SetServices.
package cli
