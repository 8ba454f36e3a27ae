// Package pretvm is the public API of a static, time-triggered scheduler
// virtual machine for reactor-oriented runtimes.
//
// A schedule compiler emits one instruction array per worker; at runtime
// each worker runs an independent fetch-decode-execute loop over its array,
// coordinating with other workers only through a shared register file and
// a handful of opcodes: arithmetic, conditional branch, delay-until,
// wait-for-register-predicate, jump-and-link, reaction dispatch, and stop.
//
// # Quick Start
//
// Building a schedule and running it to completion:
//
//	b := pretvm.NewScheduleBuilder()
//	r1 := b.Reg()
//	b.ADDI(r1, pretvm.Zero, 5)
//	b.STP()
//
//	rt, err := pretvm.NewRuntime(pretvm.DefaultConfig(), []pretvm.Schedule{b.Build()})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := rt.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
//   - pkg/pretvm/: public API (this package)
//   - internal/pretvm/tag: saturating instant/tag arithmetic
//   - internal/pretvm/platform: the clock/sleep/mutex/condvar contract the
//     VM depends on, with a production and a deterministic-test adapter
//   - internal/pretvm/vm: the register file, instruction set, and per-worker
//     dispatch loop
//   - internal/pretvm/sched: multi-worker orchestration (spawn, join, timeout)
//   - internal/pretvm/config: YAML-loadable runtime configuration
//
// Implementation details under internal/ can change without breaking this
// package's API.
package pretvm
