package machine

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/haldane-dev/gones/cpu"
)

// Debugger runs a line-oriented monitor over the machine: set
// breakpoints, single-step, inspect memory and the PPU's beam
// position. It reads commands from stdin until 'q' or ctx is done.
func (m *Machine) Debugger(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	fmt.Printf("%s\n", m.cart)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Printf("%s\n\n", m)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run until a breakpoint or interrupt signal")
		fmt.Println("(S)tep - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - select a memory range to display")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(I)nstruction - show instruction memory locations")
		fmt.Println("(P)C - set program counter")
		fmt.Println("PP(U) - show the beam position")
		fmt.Println("(Q)uit - shut the machine down")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			m.cpu.PC = readAddress("Set PC to what address (eg: 0400)?: ")
		case 'q', 'Q':
			return
		case 'r', 'R':
			m.runUntil(ctx, sigQuit, breaks)
		case 's', 'S':
			m.Tick()
		case 'e', 'E':
			m.Reset()
		case 't', 'T':
			fmt.Println()
			i := 0
			for {
				a := 0x0100 + uint16(m.cpu.SP) + uint16(i) + 1
				fmt.Printf("0x%04x: 0x%02x ", a, m.cpuBus.Read(a))
				if a == 0x01ff || i == 2 {
					break
				}
				i++
			}
			fmt.Printf("\n\n")
		case 'i', 'I':
			fmt.Println()
			n := cpu.InstructionLength(m.cpuBus.Read(m.cpu.PC))
			for i := 0; i < n; i++ {
				a := m.cpu.PC + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", a, m.cpuBus.Read(a))
			}
			fmt.Printf("\n\n")
		case 'u', 'U':
			fmt.Printf("\nline=%d dot=%d frame=%d\n\n",
				m.ppu.Scanline(), m.ppu.Dot(), m.ppu.Frame())
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, m.cpuBus.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x++
				i++
			}
			fmt.Printf("\n\n")
		}
	}
}

// runUntil ticks the machine until the CPU lands on a breakpoint, the
// context is cancelled, or the user sends SIGINT.
func (m *Machine) runUntil(ctx context.Context, sigQuit <-chan os.Signal, breaks map[uint16]struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigQuit:
			return
		default:
		}

		m.Tick()
		if _, ok := breaks[m.cpu.PC]; ok {
			return
		}
	}
}

func readAddress(prompt string) uint16 {
	fmt.Printf(prompt)
	var a uint16
	fmt.Scanf("%x\n", &a)
	return a
}
