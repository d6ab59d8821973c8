package web

// palette: primary #2196F3 (X), secondary #F44336 (O), accent #FFC107 (winning line)
const stylesheet = `
:root {
  --color-primary: #2196F3;
  --color-secondary: #F44336;
  --color-accent: #FFC107;
  --color-player-x: var(--color-primary);
  --color-player-o: var(--color-secondary);
  --color-bg: #ffffff;
  --color-text: #1f2933;
  --color-border: #d9e2ec;
}
[data-theme="dark"] {
  --color-bg: #111827;
  --color-text: #f3f4f6;
  --color-border: #374151;
}
body { margin: 0; background: var(--color-bg); color: var(--color-text); font-family: system-ui, sans-serif; }
.ttt-app { min-height: 100vh; display: flex; align-items: center; justify-content: center; }
.ttt-container { display: flex; flex-direction: column; align-items: center; gap: 1rem; }
.ttt-header { margin: 0; font-size: 2rem; }
.ttt-game { display: flex; flex-direction: column; align-items: center; gap: 1rem; }
.ttt-status { font-size: 1.25rem; min-height: 1.5em; }
.ttt-status .mark-x { color: var(--color-player-x); font-weight: 700; }
.ttt-status .mark-o { color: var(--color-player-o); font-weight: 700; }
.ttt-board { display: grid; grid-template-columns: repeat(3, 5rem); grid-template-rows: repeat(3, 5rem); gap: 0.5rem; margin: 0; }
.ttt-square { font-size: 2.5rem; font-weight: 700; border: 2px solid var(--color-border); border-radius: 0.5rem; background: transparent; color: var(--color-text); cursor: pointer; }
.ttt-square.highlight { background: var(--color-accent); }
.ttt-controls { margin: 0; }
.ttt-btn { padding: 0.5rem 1.5rem; border: none; border-radius: 0.5rem; background: var(--color-primary); color: #ffffff; font-size: 1rem; cursor: pointer; text-decoration: none; }
.ttt-footer { font-size: 0.8rem; opacity: 0.7; }
`
