package menu_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/menu"
	"github.com/san-kum/gravsandbox/internal/persist"
)

var _ = Describe("Controller", func() {
	var (
		ctx       context.Context
		j         *journal
		doc       *body.Document
		host      *fakeHost
		files     *fakeFiles
		persister *fakePersister
		notifier  *fakeNotifier
		dialogs   *fakeDialogs
		c         *menu.Controller
	)

	BeforeEach(func() {
		ctx = context.Background()
		j = &journal{}
		doc = body.NewDocument()
		host = &fakeHost{j: j}
		files = &fakeFiles{j: j}
		persister = &fakePersister{j: j, doc: doc}
		notifier = &fakeNotifier{j: j}
		dialogs = &fakeDialogs{j: j}
		c = menu.New(menu.Deps{
			Document:  doc,
			Persister: persister,
			Host:      host,
			Files:     files,
			Bodies:    dialogs,
			Notifier:  notifier,
			Logger:    zerolog.Nop(),
		})
	})

	seed := func(names ...string) {
		for _, n := range names {
			_, err := doc.Add(body.New(n, 0, 0, 0, 0))
			Expect(err).NotTo(HaveOccurred())
		}
	}

	Describe("menus", func() {
		It("lays out File, Edit and Simulation in order", func() {
			menus := c.Menus()
			Expect(menus).To(HaveLen(3))
			Expect(menus[0].Title).To(Equal("File"))
			Expect(menus[1].Title).To(Equal("Edit"))
			Expect(menus[2].Title).To(Equal("Simulation"))

			var file []string
			for _, it := range menus[0].Items {
				if it.Separator {
					file = append(file, "-")
					continue
				}
				file = append(file, c.Label(it.Command))
			}
			Expect(file).To(Equal([]string{"New system", "Open", "Save as", "-", "Exit"}))
		})

		It("binds every menu item to a command", func() {
			for _, m := range c.Menus() {
				for _, it := range m.Items {
					if it.Separator {
						continue
					}
					_, ok := c.Command(it.Command)
					Expect(ok).To(BeTrue(), string(it.Command))
				}
			}
		})

		It("starts with the Start Simulation label", func() {
			Expect(c.Label(menu.CmdSimToggle)).To(Equal("Start Simulation"))
		})
	})

	Describe("Dispatch", func() {
		It("rejects unknown commands", func() {
			err := c.Dispatch(ctx, "file.print")
			Expect(errors.Is(err, menu.ErrUnknownCommand)).To(BeTrue())
			Expect(j.all()).To(BeEmpty())
		})

		It("refuses disabled commands without side effects", func() {
			Expect(c.Enabled(menu.CmdRemove)).To(BeFalse())
			err := c.Dispatch(ctx, menu.CmdRemove)
			Expect(errors.Is(err, menu.ErrCommandDisabled)).To(BeTrue())
			Expect(j.all()).To(BeEmpty())
		})

		It("refuses a second command while a modal is up", func() {
			files.block = make(chan struct{})
			done := make(chan error, 1)
			go func() { done <- c.Dispatch(ctx, menu.CmdOpen) }()

			Eventually(c.Busy).Should(BeTrue())
			err := c.Dispatch(ctx, menu.CmdNew)
			Expect(errors.Is(err, menu.ErrBusy)).To(BeTrue())

			close(files.block)
			Eventually(done).Should(Receive(BeNil()))
			Expect(c.Busy()).To(BeFalse())
			Expect(j.count("reset")).To(Equal(0))
		})

		It("surfaces document failures from body commands", func() {
			dialogs.add = body.Body{Name: "massless", Mass: 0}
			dialogs.addOK = true
			err := c.Dispatch(ctx, menu.CmdAddBody)
			Expect(errors.Is(err, body.ErrInvalid)).To(BeTrue())
			Expect(j.count("update")).To(Equal(0))
		})
	})

	Describe("New", func() {
		DescribeTable("always empties the document and resets the view",
			func(running bool) {
				host.running = running
				seed("a", "b")

				Expect(c.Dispatch(ctx, menu.CmdNew)).To(Succeed())

				Expect(doc.Len()).To(Equal(0))
				Expect(j.all()).To(Equal([]string{"reset", "update"}))
				Expect(host.running).To(Equal(running))
			},
			Entry("when stopped", false),
			Entry("when running", true),
		)
	})

	Describe("Open", func() {
		It("stops a running simulation exactly once before the dialog", func() {
			host.running = true
			files.ok = false

			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())

			Expect(j.count("toggle")).To(Equal(1))
			Expect(j.index("toggle")).To(BeNumerically("<", j.index("dialog")))
			Expect(host.running).To(BeFalse())
			Expect(c.Label(menu.CmdSimToggle)).To(Equal(menu.LabelStart))
		})

		It("does not toggle a stopped simulation", func() {
			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())
			Expect(j.count("toggle")).To(Equal(0))
		})

		It("prompts for XML files", func() {
			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())
			Expect(files.titles).To(Equal([]string{"Open"}))
			Expect(files.filter).To(Equal(menu.Filter{Description: "XML files", Extension: "xml"}))
		})

		It("treats cancellation as a no-op refresh", func() {
			seed("keep")
			before := doc.Bodies()

			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())

			Expect(doc.Bodies()).To(Equal(before))
			Expect(host.running).To(BeFalse())
			Expect(j.all()).To(Equal([]string{"dialog", "update"}))
		})

		It("reports load failures and still refreshes", func() {
			seed("keep")
			before := doc.Bodies()
			files.path, files.ok = "/scenes/broken.xml", true
			persister.loadErr = &persist.Error{Op: "load", Path: "/scenes/broken.xml", Err: errors.New("unexpected EOF")}

			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())

			Expect(doc.Bodies()).To(Equal(before))
			Expect(j.all()).To(Equal([]string{"dialog", "load:/scenes/broken.xml", "error", "update"}))
			Expect(notifier.titles).To(Equal([]string{"Error loading system"}))
			Expect(notifier.messages[0]).To(ContainSubstring(`"broken.xml"`))
			Expect(notifier.messages[0]).To(ContainSubstring("unexpected EOF"))
			Expect(notifier.messages[0]).NotTo(ContainSubstring("/scenes/"))
		})

		It("shows the raw message of errors that are not persist errors", func() {
			files.path, files.ok = "x.xml", true
			persister.loadErr = fmt.Errorf("permission denied")

			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())
			Expect(notifier.messages[0]).To(HaveSuffix("Error message: permission denied"))
		})
	})

	Describe("Save as", func() {
		It("stops a running simulation exactly once before the dialog", func() {
			host.running = true
			Expect(c.Dispatch(ctx, menu.CmdSaveAs)).To(Succeed())
			Expect(j.count("toggle")).To(Equal(1))
			Expect(j.index("toggle")).To(BeNumerically("<", j.index("dialog")))
		})

		It("uses the same dialog primitive and filter as Open", func() {
			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())
			openFilter := files.filter
			Expect(c.Dispatch(ctx, menu.CmdSaveAs)).To(Succeed())

			Expect(files.titles).To(Equal([]string{"Open", "Save as"}))
			Expect(files.filter).To(Equal(openFilter))
		})

		It("saves, resets and refreshes on success", func() {
			files.path, files.ok = "/tmp/out.xml", true
			Expect(c.Dispatch(ctx, menu.CmdSaveAs)).To(Succeed())
			Expect(persister.saved).To(Equal([]string{"/tmp/out.xml"}))
			Expect(j.all()).To(Equal([]string{"dialog", "save:/tmp/out.xml", "reset", "update"}))
		})

		It("names the file verbatim in the failure message", func() {
			files.path, files.ok = "/tmp/Szene \"1\"\tv2.xml", true
			persister.saveErr = &persist.Error{Op: "save", Path: files.path, Err: errors.New("disk full")}

			Expect(c.Dispatch(ctx, menu.CmdSaveAs)).To(Succeed())
			Expect(notifier.titles).To(Equal([]string{"Error saving system"}))
			Expect(notifier.messages[0]).To(Equal(
				"Could not save system to file \"Szene \"1\"\tv2.xml\"!\nError message: disk full"))
		})

		It("treats cancellation as a no-op refresh", func() {
			Expect(c.Dispatch(ctx, menu.CmdSaveAs)).To(Succeed())
			Expect(persister.saved).To(BeEmpty())
			Expect(j.count("update")).To(Equal(1))
		})
	})

	Describe("Exit", func() {
		It("delegates to the host", func() {
			seed("a")
			Expect(c.Dispatch(ctx, menu.CmdExit)).To(Succeed())
			Expect(j.all()).To(Equal([]string{"close"}))
			Expect(doc.Len()).To(Equal(1))
		})
	})

	Describe("body commands", func() {
		It("adds and selects a confirmed body", func() {
			dialogs.add = body.New("comet", 3, 4, 0, 0)
			dialogs.addOK = true

			Expect(c.Dispatch(ctx, menu.CmdAddBody)).To(Succeed())

			Expect(doc.Len()).To(Equal(1))
			Expect(doc.Selected()).NotTo(BeNil())
			Expect(doc.Selected().Name).To(Equal("comet"))
			Expect(dialogs.host).To(BeIdenticalTo(host))
			Expect(j.all()).To(Equal([]string{"add-dialog", "update"}))
		})

		It("leaves the document alone when add is cancelled", func() {
			Expect(c.Dispatch(ctx, menu.CmdAddBody)).To(Succeed())
			Expect(doc.Len()).To(Equal(0))
			Expect(j.all()).To(Equal([]string{"add-dialog"}))
		})

		It("passes the host selection to the edit dialog", func() {
			seed("planet")
			sel := doc.Bodies()[0]
			host.selected = &sel
			edited := sel
			edited.Mass = 42
			dialogs.edit, dialogs.editOK = edited, true

			Expect(c.Dispatch(ctx, menu.CmdEditBody)).To(Succeed())

			Expect(dialogs.editSeen).To(Equal(&sel))
			got, _ := doc.Get(sel.ID)
			Expect(got.Mass).To(Equal(42.0))
			Expect(j.index("selected")).To(BeNumerically("<", j.index("edit-dialog")))
		})

		It("lets the edit dialog handle a missing selection", func() {
			seed("planet")
			Expect(c.Dispatch(ctx, menu.CmdEditBody)).To(Succeed())
			Expect(dialogs.editCalled).To(BeTrue())
			Expect(dialogs.editSeen).To(BeNil())
			Expect(j.count("update")).To(Equal(0))
		})

		It("removes the body the dialog confirms", func() {
			seed("a", "b")
			victim := doc.Bodies()[1]
			dialogs.removeID, dialogs.removeOK = victim.ID, true

			Expect(c.Dispatch(ctx, menu.CmdRemove)).To(Succeed())

			Expect(dialogs.removeSeen).To(HaveLen(2))
			Expect(doc.Len()).To(Equal(1))
			_, ok := doc.Get(victim.ID)
			Expect(ok).To(BeFalse())
		})

		It("enables edit and remove only with bodies present", func() {
			Expect(c.Enabled(menu.CmdAddBody)).To(BeTrue())
			Expect(c.Enabled(menu.CmdEditBody)).To(BeFalse())
			seed("a")
			Expect(c.Enabled(menu.CmdEditBody)).To(BeTrue())
			Expect(c.Enabled(menu.CmdRemove)).To(BeTrue())
		})
	})

	Describe("simulation toggle", func() {
		It("updates the label strictly before toggling", func() {
			var labelAtToggle string
			host.onToggle = func() { labelAtToggle = c.Label(menu.CmdSimToggle) }

			Expect(c.Dispatch(ctx, menu.CmdSimToggle)).To(Succeed())

			Expect(labelAtToggle).To(Equal("Stopp Simulation"))
			Expect(host.running).To(BeTrue())
		})

		It("returns to the initial state and label after two toggles", func() {
			initial := c.Label(menu.CmdSimToggle)

			Expect(c.Dispatch(ctx, menu.CmdSimToggle)).To(Succeed())
			Expect(c.Label(menu.CmdSimToggle)).To(Equal(menu.LabelStop))
			Expect(c.Dispatch(ctx, menu.CmdSimToggle)).To(Succeed())

			Expect(host.running).To(BeFalse())
			Expect(c.Label(menu.CmdSimToggle)).To(Equal(initial))
			Expect(j.count("toggle")).To(Equal(2))
		})

		It("re-derives the label from the run-state on refresh", func() {
			host.running = true
			c.RefreshLabels()
			Expect(c.Label(menu.CmdSimToggle)).To(Equal(menu.LabelStop))
			host.running = false
			c.RefreshLabels()
			Expect(c.Label(menu.CmdSimToggle)).To(Equal(menu.LabelStart))
		})
	})

	Describe("Lookup", func() {
		DescribeTable("resolves ids, labels and aliases",
			func(name string, want menu.CommandID) {
				id, err := c.Lookup(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(id).To(Equal(want))
			},
			Entry("id", "file.open", menu.CmdOpen),
			Entry("label", "Save as", menu.CmdSaveAs),
			Entry("alias", "quit", menu.CmdExit),
			Entry("case-insensitive", "  ADD BODY ", menu.CmdAddBody),
			Entry("toggle label", "start simulation", menu.CmdSimToggle),
		)

		It("suggests the nearest command on a miss", func() {
			_, err := c.Lookup("opne")
			Expect(errors.Is(err, menu.ErrUnknownCommand)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(`did you mean "open"`))
		})
	})

	Describe("scenarios", func() {
		It("A: open while running replaces the document", func() {
			host.running = true
			seed("old")
			persister.scene = []body.Body{body.New("x", 1, 0, 0, 0), body.New("y", -1, 0, 0, 0)}
			files.path, files.ok = "/home/u/scene.xml", true

			Expect(c.Dispatch(ctx, menu.CmdOpen)).To(Succeed())

			Expect(host.running).To(BeFalse())
			Expect(doc.Len()).To(Equal(2))
			Expect(doc.Bodies()[0].Name).To(Equal("x"))
			Expect(j.all()).To(Equal([]string{"toggle", "dialog", "load:/home/u/scene.xml", "reset", "update"}))
		})

		It("B: a failed save reports the file and cause", func() {
			seed("a")
			before := doc.Bodies()
			files.path, files.ok = "out.xml", true
			persister.saveErr = errors.New("disk full")

			Expect(c.Dispatch(ctx, menu.CmdSaveAs)).To(Succeed())

			Expect(notifier.messages).To(HaveLen(1))
			Expect(notifier.messages[0]).To(ContainSubstring("out.xml"))
			Expect(notifier.messages[0]).To(ContainSubstring("disk full"))
			Expect(notifier.titles[0]).To(Equal("Error saving system"))
			Expect(doc.Bodies()).To(Equal(before))
			Expect(j.count("update")).To(Equal(1))
			Expect(j.count("reset")).To(Equal(0))
			Expect(j.index("error")).To(BeNumerically("<", j.index("update")))
		})

		It("C: two toggles leave state and label unchanged", func() {
			initialLabel := c.Label(menu.CmdSimToggle)
			initialState := host.running

			Expect(c.Dispatch(ctx, menu.CmdSimToggle)).To(Succeed())
			Expect(c.Dispatch(ctx, menu.CmdSimToggle)).To(Succeed())

			Expect(host.running).To(Equal(initialState))
			Expect(c.Label(menu.CmdSimToggle)).To(Equal(initialLabel))
		})
	})
})
