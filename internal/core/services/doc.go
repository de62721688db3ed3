// Package services implements the driving ports over the driven ports.
//
// Services contain the pipeline's business logic: conversion
// orchestration with per-work locking and GPU fallback, availability
// inspection over the static check registry, and suggestion-table
// curation with optimistic concurrency.
package services
